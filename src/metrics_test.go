package src

import "testing"

func TestBuildMetricSpecsDefault(t *testing.T) {
	specs := BuildMetricSpecs(false, false, false)
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if specs[0].Name != "VMAF" || specs[0].Column != "vmaf" || specs[0].Fragment != "" {
		t.Errorf("unexpected primary metric: %+v", specs[0])
	}
}

func TestBuildMetricSpecsAll(t *testing.T) {
	specs := BuildMetricSpecs(true, true, true)

	want := []MetricSpec{
		{Name: "VMAF", Fragment: "", Column: "vmaf", Precision: 2},
		{Name: "PSNR", Fragment: ":psnr=1", Column: "psnr", Precision: 2},
		{Name: "SSIM", Fragment: ":ssim=1", Column: "ssim", Precision: 4},
		{Name: "MS-SSIM", Fragment: ":ms_ssim=1", Column: "ms_ssim", Precision: 4},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %d specs, want %d", len(specs), len(want))
	}
	for i := range want {
		if specs[i] != want[i] {
			t.Errorf("spec[%d] = %+v, want %+v", i, specs[i], want[i])
		}
	}
}

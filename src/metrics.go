package src

// MetricSpec ties together the three faces of one quality metric: the name
// shown in the report, the libvmaf filter fragment that enables it, and the
// CSV column it is logged under. Fragment and Column come from the same
// table row, so a requested metric always maps to exactly one column.
type MetricSpec struct {
	Name      string
	Fragment  string
	Column    string
	Precision int
}

// BuildMetricSpecs returns the metric set for a run. VMAF is always first;
// it is the base libvmaf invocation and needs no enabling fragment. The
// optional metrics follow in a fixed order.
func BuildMetricSpecs(psnr, ssim, msSSIM bool) []MetricSpec {
	specs := []MetricSpec{
		{Name: "VMAF", Fragment: "", Column: "vmaf", Precision: 2},
	}
	if psnr {
		specs = append(specs, MetricSpec{Name: "PSNR", Fragment: ":psnr=1", Column: "psnr", Precision: 2})
	}
	if ssim {
		specs = append(specs, MetricSpec{Name: "SSIM", Fragment: ":ssim=1", Column: "ssim", Precision: 4})
	}
	if msSSIM {
		specs = append(specs, MetricSpec{Name: "MS-SSIM", Fragment: ":ms_ssim=1", Column: "ms_ssim", Precision: 4})
	}
	return specs
}

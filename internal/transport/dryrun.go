package transport

// DryRun accepts every report. Combined with the raw logger it shows what
// would be sent without any USB hardware.
type DryRun struct{}

func (DryRun) WriteReport([]byte) error { return nil }

func (DryRun) Close() error { return nil }

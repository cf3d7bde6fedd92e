package ingest

// Reporter receives coarse progress updates during long-running operations.
type Reporter interface {
	Report(stage, message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(stage, message string)

func (f ReporterFunc) Report(stage, message string) { f(stage, message) }

// NopReporter discards all progress updates.
type NopReporter struct{}

func (NopReporter) Report(_, _ string) {}

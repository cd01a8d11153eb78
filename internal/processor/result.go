package processor

// Result is the outcome of sealing or unsealing one file, as handed to the
// reporting goroutine.
type Result struct {
	// Input is the source path.
	Input string

	// Output is the destination path; empty when processing failed.
	Output string

	// OutputSize is the size of the committed output in bytes.
	OutputSize int64

	// Error is the terminal failure, if any.
	Error error
}

func success(input, output string, size int64) Result {
	return Result{Input: input, Output: output, OutputSize: size}
}

func failure(input string, err error) Result {
	return Result{Input: input, Error: err}
}

// summary aggregates the outcomes of one run.
type summary struct {
	processed int
	errored   int
	totalSize int64
}

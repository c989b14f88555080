package line

// OpenError is returned by [New] when the file can't be opened or scanned. No producer is
// returned together with it.
type OpenError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

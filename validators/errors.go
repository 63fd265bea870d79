package validators

// ClientError is a rejected request that the transport reports as 400.
type ClientError struct {
	Msg string
}

func (e *ClientError) Error() string { return e.Msg }

// BuggedClientError is a rejected request that the transport reports as 500.
// Password format violations use it; clients depend on that status.
type BuggedClientError struct {
	Msg string
}

func (e *BuggedClientError) Error() string { return e.Msg }

func clientErr(msg string) error { return &ClientError{Msg: msg} }

func buggedErr(msg string) error { return &BuggedClientError{Msg: msg} }

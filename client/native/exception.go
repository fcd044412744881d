package native

// An Exception is a value thrown across the native call boundary.
type Exception struct {
	Name    string
	Message string
}

func (e *Exception) Error() string {
	if e.Name == "" {
		return "native exception: " + e.Message
	}
	return "native exception: " + e.Name + ": " + e.Message
}

// thrown converts a thrown value, already reduced to a name and message, into an error.
// The runtime throws the bare string "unwind" when a call leaves through the main loop.
func thrown(name, message string) error {
	if name == "" && message == "unwind" {
		return ErrUnwind
	}
	return &Exception{Name: name, Message: message}
}

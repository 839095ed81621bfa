package switchpad

import "io"

// OutputState is the vendor output report the console may send. Its
// content is undocumented; it is only forwarded to the logs.
type OutputState struct {
	Payload [OutputStateSize]byte
}

func (s OutputState) MarshalBinary() ([]byte, error) {
	b := make([]byte, OutputStateSize)
	copy(b, s.Payload[:])
	return b, nil
}

func (s *OutputState) UnmarshalBinary(data []byte) error {
	if len(data) < OutputStateSize {
		return io.ErrUnexpectedEOF
	}
	copy(s.Payload[:], data)
	return nil
}

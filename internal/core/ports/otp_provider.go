package ports

import "context"

// OTPProvider abstracts the remote verification capability. The provider owns
// challenge state end to end: code generation, delivery, expiry, and single-use
// enforcement all happen on its side of the boundary.
type OTPProvider interface {
	// RequestCode asks the provider to deliver a fresh one-time code to phone.
	RequestCode(ctx context.Context, phone string) error
	// CheckCode reports whether the provider approved the code for phone.
	// A false result with a nil error means the code was denied.
	CheckCode(ctx context.Context, phone, code string) (bool, error)
}

package diag

// Reporter receives findings from a producer. *Bag is the usual one.
type Reporter interface {
	Report(d Diagnostic)
}

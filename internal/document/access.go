package document

// AccessPolicy is the deterrent gate on viewing a document's content. It is
// a plaintext equality check, not a security boundary: no hashing, no rate
// limiting, no lockout. The zero value is Open.
type AccessPolicy struct {
	password string
}

// Open returns the policy that grants every attempt.
func Open() AccessPolicy {
	return AccessPolicy{}
}

// DeterrentPassword returns a policy granting only exact matches of pw.
// An empty pw collapses to Open.
func DeterrentPassword(pw string) AccessPolicy {
	return AccessPolicy{password: pw}
}

// Protected reports whether the policy requires a credential at all.
func (p AccessPolicy) Protected() bool {
	return p.password != ""
}

// Check grants when the policy is Open or the attempt equals the stored
// password exactly.
func (p AccessPolicy) Check(attempt string) bool {
	return p.password == "" || attempt == p.password
}

// Protection derives the document's access policy. An empty-equivalent
// password normalizes to Open, so legacy records holding "" behave as
// unprotected everywhere.
func (d *Document) Protection() AccessPolicy {
	return DeterrentPassword(d.Password)
}

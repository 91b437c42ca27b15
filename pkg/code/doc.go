// Package code defines the identifier type shared by every taxonomy component.
//
// # Identity
//
// A [Code] is an opaque string. Graph identity, set membership and integrity
// differences all compare codes as exact strings. Typed cell values coming
// from spreadsheets are canonicalized once by [Of] before they become codes,
// so the integer 2 and the float 2.0 both become "2".
//
// # Presentation
//
// [Format] is a pure display function: integral numeric codes print without
// a decimal point and non-integral ones print their shortest decimal form.
// It never feeds back into identity.
//
// # Root Sentinel
//
// Composition tables mark top-level indicators with the parent code "0"
// ([Root]). The sentinel is a real graph node (it ties the top level together)
// but never counts as an indicator in referential checks.
package code

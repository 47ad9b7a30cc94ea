// Package magetasks holds the build, test and lint tasks behind regdash's
// magefile. Each exported function is a mage target body; the magefile
// only names and orders them.
package magetasks

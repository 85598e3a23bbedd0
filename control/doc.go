// Package control defines the contracts shared by editable controls and the
// code that intercepts their edits.
//
// A control owns its text and selection and reports edits to exactly one
// installed handler before applying them. Handlers form a forwarding chain:
// an installed handler keeps the one it replaced and passes through every
// event it does not care about.
package control

// Package normalisers turns uploads into the uniform Document form.
// Each subpackage handles one declared format; the Registry dispatches
// on Upload.Format.
//
// Normalisers are registered with the Registry at startup.
package normalisers

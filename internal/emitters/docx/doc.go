// Package docx emits documents as Office Open XML word-processing packages.
//
// One w:r is written per span with its font, bold and colour. Tabs and
// newlines inside span text become w:tab and w:br.
package docx

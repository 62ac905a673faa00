// Package opc provides the package container layer for PPTX editing: a
// PPTX file is a zip archive of XML parts (Open Packaging Conventions),
// and this package reads one into memory, lets callers overwrite
// individual parts, and repackages the archive.
//
// # Reading
//
// A [Package] is materialized from bytes or a reader:
//
//	pkg, err := opc.FromBytes(data)
//	slides := pkg.SlideParts() // ["ppt/slides/slide1.xml", ...]
//
// # Editing
//
// Parts are replaced wholesale; the container tracks which parts changed:
//
//	data, _ := pkg.Part("ppt/slides/slide1.xml")
//	pkg.SetPart("ppt/slides/slide1.xml", rewritten)
//
// # Repackaging
//
// [Package.Bytes] writes a fresh archive with entries in their original
// order. Parts that were never overwritten are written back from their
// original raw bytes, so their content is byte-identical to the input.
package opc

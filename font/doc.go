// Package font provides glyph metrics for text measurement: parsed
// TrueType/OpenType outlines, kerned string measurement, family
// fallback, and width-table estimation when no outline is available.
//
// # Cache
//
// All state lives in an explicit [Cache] constructed by the caller and
// passed by reference; there are no package-level registries. A new
// cache can measure the bundled Go font families immediately:
//
//	cache := font.NewCache()
//	w, h, ok := cache.Measure("Hello", "Go", 18, false, false)
//
// Additional families are registered from memory, from a file, or by
// scanning a directory:
//
//	err := cache.RegisterData("Acme Display", ttfBytes)
//	err := cache.RegisterFile("Corporate", "fonts/corporate.ttf")
//	cache.ScanDir("/usr/share/fonts")
//
// # Measurement
//
// [Cache.Measure] reports the advance width and line height in pixels
// at 72 DPI, where one point equals one pixel. Faces are created with
// unhinted metrics because PowerPoint's layout engine measures text the
// same way. A family with no registered outline yields ok == false;
// the cache never guesses.
//
// # Fallback and estimation
//
// [Resolve] maps common proprietary families (Calibri, Arial, Courier
// New, ...) to a bundled family and reports that a substitution
// happened. [EstimateStringWidth] approximates widths from standard
// reference tables when no outline can be loaded at all.
//
// # Acquisition
//
// A [Source] supplies outlines on demand; [HTTPSource] fetches them
// over HTTP. [Cache.Warm] loads every family a document needs in one
// pass, before any mutation starts:
//
//	cache.SetSource(&font.HTTPSource{BaseURL: "https://fonts.example.com"})
//	missing := cache.Warm([]string{"Calibri", "Acme Display"})
package font

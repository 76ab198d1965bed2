// Package pdf provides pdfcpu-backed adapters for page geometry and offline
// rendering of edit instructions.
//
// GeometryReader implements driven.PageGeometrySource. Renderer implements
// driven.EditBackend without a network service: each instruction becomes a
// pdfcpu stamp on its page and the result is written to an output directory.
package pdf

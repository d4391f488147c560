// Package render turns view frames into output artifacts.
//
// # Overview
//
// A view frame is a complete rendering snapshot: nodes and links in paint
// order, the camera transform, and optionally the alignment grid and a
// tooltip. This package serializes frames without touching live engine
// state. It provides:
//
//   - SVG rendering via [RenderSVG], with embedded highlight styles
//   - JSON rendering via [RenderJSON], the wire format streamed to clients
//
// # SVG Rendering
//
// RenderSVG emits a standalone SVG document. The camera transform is applied
// as a group transform so the output matches what an interactive client
// shows at the same zoom and pan.
//
//	f := gv.Frame()
//	svg := render.RenderSVG(f, render.WithBackground("#111"))
package render

// Package render draws a decomposition as a Graphviz diagram.
//
// Every segment gets its own color so that the polylines a wireframe
// overlay would draw can be told apart at a glance. Leaf and Branch vertices,
// where segments start and stop, are drawn as large black points; Chain
// vertices are small grey points. This is a debugging view of the topology,
// not a mesh renderer: vertex positions are chosen by the layout engine.
//
//	dot := render.ToDOT(g, d, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [Render] dispatches on a [Format] name and is what the CLI and API call.
package render

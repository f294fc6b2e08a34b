package mdl

// Vertex is a homogeneous point (x, y, z, w). Generators always emit w = 1.
type Vertex [4]float64

// Pt returns the vertex (x, y, z, 1).
func Pt(x, y, z float64) Vertex {
	return Vertex{x, y, z, 1}
}

// X returns the x coordinate.
func (v Vertex) X() float64 { return v[0] }

// Y returns the y coordinate.
func (v Vertex) Y() float64 { return v[1] }

// Z returns the z coordinate.
func (v Vertex) Z() float64 { return v[2] }

// GeometryBuffer is an ordered list of vertices consumed in fixed-size
// groups: pairs for edges, triples for triangles. The buffer does not
// enforce the grouping; callers that append edges must read edges.
//
// A GeometryBuffer is owned by one stage at a time. TransformedBy returns a
// fresh buffer so the source is never aliased by the result.
type GeometryBuffer struct {
	verts []Vertex
}

// NewGeometryBuffer creates an empty buffer with room for n vertices.
func NewGeometryBuffer(n int) *GeometryBuffer {
	return &GeometryBuffer{verts: make([]Vertex, 0, n)}
}

// Len returns the number of vertices.
func (g *GeometryBuffer) Len() int { return len(g.verts) }

// At returns the i-th vertex.
func (g *GeometryBuffer) At(i int) Vertex { return g.verts[i] }

// Vertices returns the underlying vertices. The slice must not be modified.
func (g *GeometryBuffer) Vertices() []Vertex { return g.verts }

// Append adds vertices to the end of the buffer.
func (g *GeometryBuffer) Append(vs ...Vertex) {
	g.verts = append(g.verts, vs...)
}

// AddEdge appends the two endpoints of an edge.
func (g *GeometryBuffer) AddEdge(p0, p1 Vertex) {
	g.verts = append(g.verts, p0, p1)
}

// AddTriangle appends the three corners of a triangle. The corners must be
// given counter-clockwise as seen from the side the triangle faces.
func (g *GeometryBuffer) AddTriangle(p0, p1, p2 Vertex) {
	g.verts = append(g.verts, p0, p1, p2)
}

// Extend appends every vertex of other.
func (g *GeometryBuffer) Extend(other *GeometryBuffer) {
	g.verts = append(g.verts, other.verts...)
}

// Clear removes all vertices but keeps the allocated storage.
func (g *GeometryBuffer) Clear() {
	g.verts = g.verts[:0]
}

// Transform applies m to every vertex in place.
func (g *GeometryBuffer) Transform(m Matrix) {
	for i, v := range g.verts {
		g.verts[i] = m.Apply(v)
	}
}

// TransformedBy returns a new buffer holding m · v for every vertex v.
func (g *GeometryBuffer) TransformedBy(m Matrix) *GeometryBuffer {
	out := &GeometryBuffer{verts: make([]Vertex, len(g.verts))}
	for i, v := range g.verts {
		out.verts[i] = m.Apply(v)
	}
	return out
}

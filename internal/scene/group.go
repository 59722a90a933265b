package scene

// RenderableGroup batches renderables that share an identity so the whole
// group is drawn with a single instanced call.
type RenderableGroup struct {
	id      string
	members []Renderable
	batch   InstanceBatch
}

func NewRenderableGroup(id string) *RenderableGroup {
	return &RenderableGroup{id: id}
}

func (g *RenderableGroup) ID() string { return g.id }

func (g *RenderableGroup) Len() int { return len(g.members) }

func (g *RenderableGroup) Members() []Renderable { return g.members }

// Add appends r to the group. Nil renderables are ignored.
func (g *RenderableGroup) Add(r Renderable) {
	if r == nil {
		return
	}
	g.members = append(g.members, r)
}

// BuildBatch rebuilds the per-instance arrays from scratch in member order.
func (g *RenderableGroup) BuildBatch() *InstanceBatch {
	g.batch.Reset()
	for _, r := range g.members {
		g.batch.Matrices = append(g.batch.Matrices, r.TransformationMatrix())
		g.batch.Materials = append(g.batch.Materials, r.Material())
	}
	return &g.batch
}

// Render draws every member through the first one. Empty groups draw nothing.
func (g *RenderableGroup) Render(ctx RenderContext) {
	if len(g.members) == 0 {
		return
	}
	g.members[0].Render(ctx, g.BuildBatch())
}

// Dispose releases each member's resources.
func (g *RenderableGroup) Dispose() {
	for _, r := range g.members {
		r.Dispose()
	}
	g.members = nil
}

package scene

// Scene buckets renderables into groups by identity and owns the terrain and
// sky, which are drawn outside the batching scheme.
type Scene struct {
	groups  map[string]*RenderableGroup
	order   []*RenderableGroup
	terrain Renderable
	sky     Renderable
}

func New() *Scene {
	return &Scene{groups: make(map[string]*RenderableGroup)}
}

// AddRenderable files r under its RenderableID, creating the group on first
// use. Nil renderables are ignored.
func (s *Scene) AddRenderable(r Renderable) {
	if r == nil {
		return
	}
	id := r.RenderableID()
	g, ok := s.groups[id]
	if !ok {
		g = NewRenderableGroup(id)
		s.groups[id] = g
		s.order = append(s.order, g)
	}
	g.Add(r)
}

func (s *Scene) SetTerrain(r Renderable) { s.terrain = r }

func (s *Scene) SetSky(r Renderable) { s.sky = r }

// Group returns the group for id, or nil.
func (s *Scene) Group(id string) *RenderableGroup { return s.groups[id] }

// Groups returns the groups in the order they were created.
func (s *Scene) Groups() []*RenderableGroup { return s.order }

func (s *Scene) GroupCount() int { return len(s.order) }

// InstanceCount is the number of grouped renderables across all groups.
func (s *Scene) InstanceCount() int {
	n := 0
	for _, g := range s.order {
		n += g.Len()
	}
	return n
}

// Render draws the terrain, every group, and the sky last.
func (s *Scene) Render(ctx RenderContext) {
	if s.terrain != nil {
		s.terrain.Render(ctx, SingleInstance(s.terrain.TransformationMatrix(), s.terrain.Material()))
	}
	for _, g := range s.order {
		g.Render(ctx)
	}
	if s.sky != nil {
		s.sky.Render(ctx, nil)
	}
}

func (s *Scene) Dispose() {
	if s.terrain != nil {
		s.terrain.Dispose()
		s.terrain = nil
	}
	for _, g := range s.order {
		g.Dispose()
	}
	s.groups = make(map[string]*RenderableGroup)
	s.order = nil
	if s.sky != nil {
		s.sky.Dispose()
		s.sky = nil
	}
}

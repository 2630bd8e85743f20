package marquee

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"
)

var (
	colorBackground = Color{R: 0.02, G: 0.02, B: 0.04, A: 1}
	colorSurface    = Color{R: 0.07, G: 0.07, B: 0.1, A: 1}
	colorCard       = Color{R: 0.12, G: 0.12, B: 0.16, A: 1}
	colorMuted      = Color{R: 0.61, G: 0.64, B: 0.69, A: 1}
	colorGreen      = Color{R: 0.29, G: 0.87, B: 0.5, A: 1}
	colorBlack      = Color{A: 1}
)

const (
	navHeight      = 64
	navScrollLimit = 50
	pagePadding    = 48
	sectionPadding = 96
	cardGap        = 24
	revealRise     = 30
	cardRise       = 50
)

var heroChips = []string{"100M+ Songs", "No Ads with Premium", "Offline Listening", "Hi-Fi Quality"}

// riseFrom is the hidden pose of a reveal: transparent, dy below rest and
// scaled by scale.
func riseFrom(dy, scale float64) State {
	return State{Alpha: 0, OffsetY: dy, Scale: scale}
}

// Page is a landing page built from a PageConfig: a navbar fixed to the top
// of the viewport and a vertical stack of sections.
type Page struct {
	Config *PageConfig
	Navbar *Navbar

	Hero     *Section
	Features *Section
	Stats    *Section
	Showcase *Section
	Footer   *Section

	// Height is the total height of the stacked sections.
	Height float64

	scene *Scene
}

// BuildPage lays cfg out in the scene and arms every section's trigger. A nil
// cfg builds the embedded default page. When the scene has a camera its
// bounds are clamped to the page.
func (s *Scene) BuildPage(cfg *PageConfig, fonts Fonts) (*Page, error) {
	if cfg == nil {
		cfg = DefaultPageConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Page{Config: cfg, scene: s}

	builders := []struct {
		dst   **Section
		build func(*PageConfig, Fonts, float64) (*Section, error)
	}{
		{&p.Hero, s.buildHero},
		{&p.Features, s.buildFeatures},
		{&p.Stats, s.buildStats},
		{&p.Showcase, s.buildShowcase},
		{&p.Footer, s.buildFooter},
	}
	y := 0.0
	for _, b := range builders {
		sec, err := b.build(cfg, fonts, y)
		if err != nil {
			p.Dispose()
			return nil, err
		}
		*b.dst = sec
		y += sec.Node.Height
	}
	p.Height = y
	p.Navbar = s.newNavbar(cfg, fonts)

	if cam := s.Camera(); cam != nil {
		cam.SetBounds(Rect{Width: s.width, Height: math.Max(y, s.height)})
	}
	s.logger.Info("page: built", "title", cfg.Title, "sections", len(p.Sections()), "height", y)
	return p, nil
}

// Sections returns the page's sections top to bottom.
func (p *Page) Sections() []*Section {
	var out []*Section
	for _, sec := range []*Section{p.Hero, p.Features, p.Stats, p.Showcase, p.Footer} {
		if sec != nil {
			out = append(out, sec)
		}
	}
	return out
}

// Section returns the section with the given name, or nil.
func (p *Page) Section(name string) *Section {
	for _, sec := range p.Sections() {
		if sec.Name == name {
			return sec
		}
	}
	return nil
}

// Dispose tears down every section and the navbar. Idempotent.
func (p *Page) Dispose() {
	for _, sec := range p.Sections() {
		sec.Dispose()
	}
	if p.Navbar != nil {
		p.Navbar.Dispose()
	}
}

// --- Sections ---

func (s *Scene) buildHero(cfg *PageConfig, fonts Fonts, y float64) (*Section, error) {
	w, h := s.width, s.height
	sec := s.NewSection("hero", y, h)
	sec.Node.AddChild(NewRect("hero-bg", w, h, colorBackground))

	glow := NewRect("hero-glow", 360, 360, colorGreen)
	glow.SetPosition((w-360)/2, h/2-180)
	glow.OnUpdate = PulseAlpha(glow, 4, 0.08, 0.25)
	sec.Node.AddChild(glow)

	notes := NewParticleEmitter("hero-notes", EmitterConfig{
		MaxParticles: 48,
		EmitRate:     6,
		Lifetime:     Range{Min: 4, Max: 8},
		Speed:        Range{Min: 20, Max: 45},
		Angle:        Range{Min: -math.Pi/2 - 0.2, Max: -math.Pi/2 + 0.2},
		Size:         Range{Min: 3, Max: 6},
		SpawnArea:    Rect{Y: h - 24, Width: w, Height: 24},
		Sway:         12,
		StartAlpha:   Range{Min: 0.5, Max: 0.8},
		EndAlpha:     Range{Min: 0, Max: 0},
		Color:        colorGreen,
		Seed:         cfg.Showcase.Seed,
	})
	notes.Emitter.Start()
	sec.Node.AddChild(notes)

	title := textNode("hero-title", cfg.Title, fonts.Heading, ColorWhite)
	tagline := textNode("hero-tagline", cfg.Tagline, fonts.Value, colorGreen)
	blurb := textNode("hero-blurb", WrapText(
		"Immerse yourself in millions of songs with crystal-clear quality, personalized playlists, and revolutionary 3D audio experience.",
		fonts.Body, math.Min(640, w-2*pagePadding)), fonts.Body, colorMuted)
	cta := button("hero-cta", "Start Listening", fonts.Body, colorGreen)
	chips := row("hero-chips", heroChips, fonts.Body, colorMuted, 32)

	items := []*Node{title, tagline, blurb, cta, chips}
	stackCentered(sec.Node, items, w, h*0.28, 28)
	if _, err := sec.AddReveal(items, cfg.Timing.Hero.Group(len(items)), riseFrom(revealRise, 1), Rest); err != nil {
		sec.Dispose()
		return nil, err
	}
	sec.Observe(0)
	return sec, nil
}

func (s *Scene) buildFeatures(cfg *PageConfig, fonts Fonts, y float64) (*Section, error) {
	w := s.width
	sec := s.NewSection("features", y, 0)
	bg := NewRect("features-bg", w, 0, colorSurface)
	sec.Node.AddChild(bg)

	top, err := addHeading(sec, fonts, cfg.Timing.Heading, "Why Choose "+cfg.Title+"?",
		"We're not just another streaming service. We're reimagining how you discover and experience music.")
	if err != nil {
		sec.Dispose()
		return nil, err
	}

	cols := columns(w, 4)
	cw := cardWidth(w, cols)
	const ch = 220
	cards := make([]*Node, len(cfg.Features))
	for i, f := range cfg.Features {
		card := NewRect(fmt.Sprintf("feature-%d", i), cw, ch, colorCard)
		card.SetPosition(gridX(i, cols, cw), top+float64(i/cols)*(ch+cardGap))
		card.SetOrigin(0.5, 0.5)

		badge := NewRect(card.Name+"-icon", 48, 48, colorOr(f.Color, colorGreen))
		badge.SetPosition(24, 24)
		card.AddChild(badge)

		t := textNode(card.Name+"-title", f.Title, fonts.Body, ColorWhite)
		t.SetPosition(24, 92)
		card.AddChild(t)

		d := textNode(card.Name+"-desc", WrapText(f.Description, fonts.Body, cw-48), fonts.Body, colorMuted)
		d.SetPosition(24, 124)
		card.AddChild(d)

		sec.Node.AddChild(card)
		cards[i] = card
	}
	if len(cards) > 0 {
		if _, err := sec.AddReveal(cards, cfg.Timing.Items.Group(len(cards)), riseFrom(cardRise, 0.9), Rest); err != nil {
			sec.Dispose()
			return nil, err
		}
	}

	rows := (len(cards) + cols - 1) / cols
	setSectionHeight(sec, bg, top+float64(rows)*(ch+cardGap)+sectionPadding)
	sec.Observe(cfg.Timing.SensorMargin)
	return sec, nil
}

func (s *Scene) buildStats(cfg *PageConfig, fonts Fonts, y float64) (*Section, error) {
	w := s.width
	sec := s.NewSection("stats", y, 0)
	bg := NewRect("stats-bg", w, 0, colorBackground)
	sec.Node.AddChild(bg)

	fail := func(err error) (*Section, error) {
		sec.Dispose()
		return nil, err
	}

	top, err := addHeading(sec, fonts, cfg.Timing.Heading, "The Numbers Speak",
		"Join millions of music lovers who have made "+cfg.Title+" their soundtrack to life.")
	if err != nil {
		return fail(err)
	}

	cols := columns(w, 4)
	cw := cardWidth(w, cols)
	const ch = 200
	n := len(cfg.Stats)
	cards := make([]*Node, n)
	underlines := make([]*Node, n)
	for i, st := range cfg.Stats {
		c := colorOr(st.Color, colorGreen)
		card := NewRect(fmt.Sprintf("stat-%d", i), cw, ch, colorCard)
		card.SetPosition(gridX(i, cols, cw), top+float64(i/cols)*(ch+cardGap))
		card.SetOrigin(0.5, 0.5)

		value := textNode(card.Name+"-value", fmt.Sprintf("0%s", st.Suffix), fonts.Value, c)
		value.SetPosition(24, 40)
		card.AddChild(value)

		label := textNode(card.Name+"-label", st.Label, fonts.Body, colorMuted)
		label.SetPosition(24, 100)
		card.AddChild(label)

		line := NewRect(card.Name+"-underline", (cw-48)*0.6, 4, c)
		line.SetPosition(24, 140)
		card.AddChild(line)

		sec.Node.AddChild(card)
		cards[i] = card
		underlines[i] = line

		if _, err := sec.AddCounter(cfg.Timing.Counter.Spec(st.Target), value, st.Suffix); err != nil {
			return fail(fmt.Errorf("stats[%d]: %w", i, err))
		}
	}
	rows := (n + cols - 1) / cols
	bottom := top + float64(rows)*(ch+cardGap)

	cta := button("stats-cta", "Join the Revolution", fonts.Body, colorGreen)
	stackCentered(sec.Node, []*Node{cta}, w, bottom+48, 0)

	if n > 0 {
		if _, err := sec.AddReveal(cards, cfg.Timing.Items.Group(n), riseFrom(cardRise, 0.9), Rest); err != nil {
			return fail(err)
		}
		if _, err := sec.AddReveal(underlines, cfg.Timing.Underline.Group(n), State{Alpha: 1, Scale: 0}, Rest); err != nil {
			return fail(err)
		}
	}
	if _, err := sec.AddReveal([]*Node{cta}, cfg.Timing.CTA.Group(1), riseFrom(revealRise, 1), Rest); err != nil {
		return fail(err)
	}

	_, bh := nodeSize(cta)
	setSectionHeight(sec, bg, bottom+48+bh+sectionPadding)
	sec.Observe(cfg.Timing.SensorMargin)
	return sec, nil
}

func (s *Scene) buildShowcase(cfg *PageConfig, fonts Fonts, y float64) (*Section, error) {
	w := s.width
	sec := s.NewSection("showcase", y, 0)
	bg := NewRect("showcase-bg", w, 0, colorSurface)
	sec.Node.AddChild(bg)

	top, err := addHeading(sec, fonts, cfg.Timing.Heading, "Curated for Every Mood",
		"Discover handpicked playlists that match your vibe, powered by our AI and music experts.")
	if err != nil {
		sec.Dispose()
		return nil, err
	}

	records := GenerateShowcase(cfg.Showcase.Seed, cfg.Showcase.Count)
	cols := columns(w, 3)
	cw := cardWidth(w, cols)
	ch := cw + 120
	cards := make([]*Node, len(records))
	for i, rec := range records {
		card := NewRect(fmt.Sprintf("playlist-%d", i), cw, ch, colorCard)
		card.SetPosition(gridX(i, cols, cw), top+float64(i/cols)*(ch+cardGap))
		card.SetOrigin(0.5, 0.5)
		card.UserData = rec

		cover := NewRect(card.Name+"-cover", cw-32, cw-32, coverColor(rec.Title))
		cover.SetPosition(16, 16)
		card.AddChild(cover)

		t := textNode(card.Name+"-title", rec.Title, fonts.Body, ColorWhite)
		t.SetPosition(16, cw)
		card.AddChild(t)

		d := textNode(card.Name+"-desc", WrapText(rec.Description, fonts.Body, cw-32), fonts.Body, colorMuted)
		d.SetPosition(16, cw+28)
		card.AddChild(d)

		tracks := textNode(card.Name+"-tracks", fmt.Sprintf("%d tracks", rec.TrackCount), fonts.Body, colorGreen)
		tracks.SetPosition(16, cw+84)
		card.AddChild(tracks)

		sec.Node.AddChild(card)
		cards[i] = card
	}
	if len(cards) > 0 {
		if _, err := sec.AddReveal(cards, cfg.Timing.ShowcaseItems.Group(len(cards)), riseFrom(cardRise, 1), Rest); err != nil {
			sec.Dispose()
			return nil, err
		}
	}

	rows := (len(cards) + cols - 1) / cols
	setSectionHeight(sec, bg, top+float64(rows)*(ch+cardGap)+sectionPadding)
	sec.Observe(cfg.Timing.ShowcaseMargin)
	return sec, nil
}

func (s *Scene) buildFooter(cfg *PageConfig, fonts Fonts, y float64) (*Section, error) {
	w := s.width
	sec := s.NewSection("footer", y, 0)
	bg := NewRect("footer-bg", w, 0, colorBlack)
	sec.Node.AddChild(bg)

	glow := NewRect("footer-glow", 32, 32, colorGreen)
	glow.SetPosition(pagePadding, 64)
	glow.OnUpdate = PulseAlpha(glow, 2, 0.1, 0.3)
	sec.Node.AddChild(glow)

	brand := textNode("footer-brand", cfg.Title, fonts.Value, ColorWhite)
	brand.SetPosition(pagePadding+44, 64)
	sec.Node.AddChild(brand)

	colW := (w - 2*pagePadding) / float64(len(cfg.Footer)+2)
	bottom := 64.0
	for i, col := range cfg.Footer {
		x := pagePadding + float64(i+2)*colW
		head := textNode(fmt.Sprintf("footer-col-%d", i), col.Title, fonts.Body, ColorWhite)
		head.SetPosition(x, 64)
		sec.Node.AddChild(head)
		ly := 104.0
		for j, link := range col.Links {
			l := textNode(fmt.Sprintf("footer-col-%d-%d", i, j), link, fonts.Body, colorMuted)
			l.SetPosition(x, ly)
			sec.Node.AddChild(l)
			ly += 28
		}
		bottom = math.Max(bottom, ly)
	}

	legal := textNode("footer-legal", "© 2025 "+cfg.Title+". All rights reserved.", fonts.Body, colorMuted)
	legal.SetPosition(pagePadding, bottom+48)
	sec.Node.AddChild(legal)
	g := NewStaggerGroup(1, 0, 0, cfg.Timing.Items.ItemDuration.D(), EasingByName(cfg.Timing.Items.Easing))
	if _, err := sec.AddReveal([]*Node{legal}, g, riseFrom(20, 1), Rest); err != nil {
		sec.Dispose()
		return nil, err
	}

	_, lh := nodeSize(legal)
	setSectionHeight(sec, bg, bottom+48+lh+pagePadding)
	sec.Observe(0)
	return sec, nil
}

// addHeading adds a centered title and subtitle revealed together when the
// section triggers. It returns the y below the heading.
func addHeading(sec *Section, fonts Fonts, timing StaggerConfig, title, subtitle string) (float64, error) {
	w := sec.Node.Width
	t := textNode(sec.Name+"-heading", title, fonts.Heading, ColorWhite)
	sub := textNode(sec.Name+"-subheading", WrapText(subtitle, fonts.Body, math.Min(640, w-2*pagePadding)), fonts.Body, colorMuted)
	items := []*Node{t, sub}
	bottom := stackCentered(sec.Node, items, w, sectionPadding, 20)
	if _, err := sec.AddReveal(items, timing.Group(len(items)), riseFrom(revealRise, 1), Rest); err != nil {
		return 0, err
	}
	return bottom + 48, nil
}

// --- Navbar ---

// Navbar is pinned to the top of the viewport. It turns opaque once the page
// has scrolled past a sentinel region at the top of the page and clears again
// when scrolled back.
type Navbar struct {
	// Node follows the camera.
	Node *Node

	bg       *Node
	sentinel *Node
	sub      *Subscription
	opaque   bool

	// OnChange runs whenever the navbar switches between clear and opaque.
	OnChange func(opaque bool)
}

func (s *Scene) newNavbar(cfg *PageConfig, fonts Fonts) *Navbar {
	w := s.width
	nb := &Navbar{}

	nb.sentinel = NewRegion("nav-sentinel", w, navScrollLimit)
	s.root.AddChild(nb.sentinel)

	bar := NewContainer("nav")
	bar.Width, bar.Height = w, navHeight
	nb.bg = NewRect("nav-bg", w, navHeight, colorBlack)
	nb.bg.Alpha = 0
	bar.AddChild(nb.bg)

	content := NewContainer("nav-content")
	brand := textNode("nav-brand", cfg.Title, fonts.Value, colorGreen)
	brand.SetPosition(pagePadding, 14)
	content.AddChild(brand)
	x := w - pagePadding
	for i := len(cfg.Nav) - 1; i >= 0; i-- {
		item := textNode(fmt.Sprintf("nav-%d", i), cfg.Nav[i], fonts.Body, ColorWhite)
		iw, _ := nodeSize(item)
		x -= iw
		item.SetPosition(x, 22)
		content.AddChild(item)
		x -= 32
	}
	bar.AddChild(content)
	s.root.AddChild(bar)
	nb.Node = bar

	s.Play(content, Transition{From: riseFrom(-20, 1), To: Rest, Duration: 500 * time.Millisecond, Easing: EasingByName("easeOut")})

	bar.OnUpdate = func(dt float64) {
		vp := s.Viewport()
		if bar.X != vp.X || bar.Y != vp.Y {
			bar.SetPosition(vp.X, vp.Y)
		}
		target := 0.0
		if nb.opaque {
			target = 0.9
		}
		// Fade toward the target over roughly 300ms.
		step := dt / 0.3 * 0.9
		switch {
		case nb.bg.Alpha < target:
			nb.bg.SetAlpha(math.Min(target, nb.bg.Alpha+step))
		case nb.bg.Alpha > target:
			nb.bg.SetAlpha(math.Max(target, nb.bg.Alpha-step))
		}
	}

	nb.sub = s.sensor.ObserveEach(nb.sentinel, 0, func() { nb.set(false) }, func() { nb.set(true) })
	return nb
}

func (nb *Navbar) set(opaque bool) {
	if nb.opaque == opaque {
		return
	}
	nb.opaque = opaque
	if nb.OnChange != nil {
		nb.OnChange(opaque)
	}
}

// Opaque reports whether the page is scrolled past the top.
func (nb *Navbar) Opaque() bool {
	return nb.opaque
}

// Dispose removes the navbar and its sentinel. Idempotent.
func (nb *Navbar) Dispose() {
	nb.Node.Dispose()
	nb.sentinel.Dispose()
}

// --- Layout helpers ---

func textNode(name, content string, f Font, c Color) *Node {
	n := NewText(name, content, f)
	n.TextBlock.Color = c
	n.syncTextSize()
	return n
}

// button is a solid pill with a text label inset by a fixed padding.
func button(name, label string, f Font, c Color) *Node {
	t := textNode(name+"-label", label, f, colorBlack)
	tw, th := nodeSize(t)
	b := NewRect(name, tw+64, th+28, c)
	t.SetPosition(32, 14)
	b.AddChild(t)
	return b
}

// row lays labels out left to right and sizes the container to fit them.
func row(name string, labels []string, f Font, c Color, gap float64) *Node {
	r := NewContainer(name)
	x := 0.0
	for i, l := range labels {
		t := textNode(fmt.Sprintf("%s-%d", name, i), l, f, c)
		t.SetPosition(x, 0)
		r.AddChild(t)
		tw, th := nodeSize(t)
		x += tw + gap
		r.Height = math.Max(r.Height, th)
	}
	if len(labels) > 0 {
		x -= gap
	}
	r.Width = x
	return r
}

// nodeSize returns the box of n, measuring text when needed.
func nodeSize(n *Node) (w, h float64) {
	if n.TextBlock != nil {
		return n.TextBlock.Size()
	}
	return n.Width, n.Height
}

// stackCentered adds items to parent as a horizontally centered column
// starting at top. It returns the y of the last item's bottom edge.
func stackCentered(parent *Node, items []*Node, width, top, gap float64) float64 {
	y := top
	for i, n := range items {
		w, h := nodeSize(n)
		n.SetPosition((width-w)/2, y)
		parent.AddChild(n)
		y += h
		if i < len(items)-1 {
			y += gap
		}
	}
	return y
}

// columns picks how many cards fit per row, up to limit.
func columns(width float64, limit int) int {
	switch {
	case width >= 1024:
		return limit
	case width >= 640:
		return min(2, limit)
	default:
		return 1
	}
}

func cardWidth(width float64, cols int) float64 {
	return (width - 2*pagePadding - float64(cols-1)*cardGap) / float64(cols)
}

func gridX(i, cols int, cw float64) float64 {
	return pagePadding + float64(i%cols)*(cw+cardGap)
}

func setSectionHeight(sec *Section, bg *Node, h float64) {
	sec.Node.Height = h
	bg.Height = h
}

func colorOr(hex string, fallback Color) Color {
	if hex == "" {
		return fallback
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}

// coverColor derives a stable placeholder tint from a playlist title.
func coverColor(title string) Color {
	f := fnv.New32a()
	f.Write([]byte(title))
	h := f.Sum32()
	return Color{
		R: 0.3 + float64(h&0xff)/255*0.6,
		G: 0.3 + float64(h>>8&0xff)/255*0.6,
		B: 0.3 + float64(h>>16&0xff)/255*0.6,
		A: 1,
	}
}

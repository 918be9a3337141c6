// Package tiltcard is a pointer-driven pseudo-3D tilt effect for cards drawn
// with [Ebitengine].
//
// A [TiltCard] follows the pointer: pressing or dragging over the card tilts
// it toward the pointer by up to [Config.MaxAngle] degrees per axis, and a
// specular [Overlay] brightens with the tilt. Releasing the pointer eases the
// card back to rest. Every change is an animated transition (via [gween]);
// a new pointer event always replaces the transition in flight.
//
// # Quick start
//
//	card, err := tiltcard.NewTiltCard(tiltcard.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	card.X, card.Y = 170, 40
//	card.SetSize(300, 400)
//	card.Attach(tiltcard.NewCard("front", 300, 400, tiltcard.Color{R: 0.2, G: 0.3, B: 0.8, A: 1}))
//
//	if err := tiltcard.Run(tiltcard.RunConfig{Title: "Tilt", Width: 640, Height: 480}, card); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, implement [ebiten.Game] yourself, attach a
// [PointerSource] with [TiltCard.SetPointerSource], and call
// [TiltCard.Update] and [TiltCard.Draw] directly. Hosts with their own input
// routing can skip the source and feed card-local events to
// [TiltCard.HandlePointer].
//
// # Rendering
//
// Children are composited into an offscreen canvas, then drawn as a grid
// mesh whose vertices pass through [TiltCard.Matrix]: a [Camera] rotation
// projected at [Config.CameraDistance], with its perspective terms divided by
// [Config.PerspectiveDamping] and re-centred on the card centre.
//
// # Configuration
//
// [Config] values can be loaded from YAML with [LoadConfig] and reloaded
// live with [WatchConfig]. Tilt events can be forwarded to a Donburi world
// with the adapter in tiltcard/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package tiltcard

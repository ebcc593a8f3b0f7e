// Package crossdim is a small cross-dimensional game-engine layer. It keeps
// game code independent of the physics and rendering library underneath.
//
// # Quick start
//
// Import a native library package for its installer, ask for an engine, and
// build a scene:
//
//	import _ "github.com/phanxgames/crossdim/physics2d"
//
//	eng := crossdim.TwoDimensionEngine(ctx, crossdim.DefaultConfig())
//	scene := eng.NewScene(crossdim.DefaultSceneConfig())
//	ball := eng.Circle(400, 100, 20, crossdim.Restitution(0.9))
//	floor := eng.Rectangle(400, 590, 800, 20, crossdim.Static())
//	scene.Add(ball, floor)
//	scene.Start(ctx)
//
// # Loading
//
// A factory checks its [Environment] for the library it needs. When the
// library is missing it fetches it with a [Loader]; the [Installer] registered
// for that library turns the fetched bundle into an installed value. A failed
// load is reported through the factory's [Alerter] and the engine is returned
// degraded rather than failing.
//
// [InitializeEngine] memoizes initialization per [Config], and [Global] is the
// process-wide slot resolved by the first default initialization.
//
// # Vectors
//
// [Vector2] and [Vector3] are mutable and chain. Each binary operation has a
// vector form and a component form:
//
//	v.Add(w)       // vector
//	v.AddXY(1, 2)  // components
//
// # Bodies and scenes
//
// A [RigidBody] wraps a native handle and carries a [ShapeTag]. A [Scene]
// owns the native engine, renderer and runner; its loops run between
// [Scene.Start] and [Scene.Stop], and tick listeners run after every frame.
//
// 3D rigid bodies and scenes are not implemented and report [ErrNotSupported].
package crossdim

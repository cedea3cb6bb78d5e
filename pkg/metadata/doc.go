// Package metadata provides the hierarchical key-value store that build documents
// consult before rendering.
//
// # Overview
//
// Every node has an identifier, its own entries, and an optional parent. Keys come
// in two shapes:
//
//   - "<identifier>/<key>" is a scoped key. It matches on the first node, walking
//     upward from the receiver, whose identifier equals the scope.
//   - "<key>" is an unscoped key. It is looked up in the receiver's own entries only.
//
// The root of every tree is a Project node. Modules hang off the project, and
// scope nodes (for example "dependencies" or "plugins") hang off modules to carry
// per-scope overrides:
//
//	proj := metadata.NewProject("sample", "com.example.sample", "1.0.0", "com.example")
//	app := metadata.NewModule("app", metadata.NamespaceFrom(proj, "app"), proj.Node)
//	deps := metadata.NewScope("dependencies", app.Node)
//	deps.Set("androidx.core:core-ktx:1.12.0", "1.13.0")
//
//	v, ok := deps.Property("dependencies/androidx.core:core-ktx:1.12.0") // "1.13.0", true
//	ns, ok := deps.Property("app/namespace")                              // "com.example.sample.app", true
//
// Nodes are populated during setup and read afterwards. They carry no locking; a
// tree belongs to one configuration pass.
package metadata

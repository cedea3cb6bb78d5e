// Package gradle models Gradle Kotlin-DSL build script fragments and renders them to text.
//
// Entities (Dependency, Plugin, repositories) render to a single line. Groups
// (DependencyGroup, PluginGroup, Repositories) wrap their members in a named
// block. Documents (ModuleBuildGradle, SettingsGradle, GradleProperties,
// LocalProperties, VersionCatalog) compose groups and write themselves to a
// fixed file name through an afero.Fs.
//
// Metadata flows down: documents hand a metadata.Provider to their groups, groups
// hand it to every member, and members with an override callback may rewrite
// themselves from the value they find. Text flows up through String.
//
//	core, _ := gradle.Alias("libs.plugins.android.application")
//	build, err := gradle.NewModuleBuildGradle(
//		gradle.NewPluginGroup(core),
//		gradle.NewDependencyGroup(gradle.NewDependency(gradle.Implementation, "a:b:1.0")),
//		nil, nil,
//	)
package gradle

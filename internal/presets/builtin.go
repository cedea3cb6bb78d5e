package presets

// Builtin returns the presets shipped with gradlegen
func Builtin() []*Preset {
	return []*Preset{
		NewAndroidAppPreset(),
		NewAndroidMultiModulePreset(),
		NewKotlinLibraryPreset(),
	}
}

var groupIDVariable = &Variable{
	Name:        "group_id",
	Description: "Maven group and base package",
	Type:        VariableTypeString,
	Default:     "com.example",
	Required:    true,
	Prompt:      "Group ID",
}

var minSdkVariable = &Variable{
	Name:        "min_sdk",
	Description: "Minimum Android API level",
	Type:        VariableTypeSelect,
	Default:     "24",
	Options:     []string{"21", "24", "26", "28"},
	Prompt:      "Minimum SDK",
}

// NewAndroidAppPreset creates a single-module Android application
func NewAndroidAppPreset() *Preset {
	return &Preset{
		Name:        "android-app",
		Description: "Single-module Android application with a version catalog",
		Version:     "1.0.0",
		Variables: []*Variable{
			groupIDVariable,
			minSdkVariable,
			{
				Name:        "compose",
				Description: "Add Jetpack Compose dependencies",
				Type:        VariableTypeConfirm,
				Default:     true,
				Prompt:      "Use Jetpack Compose?",
			},
		},
		Metadata: map[string]interface{}{
			"category": "android",
			"tags":     []string{"android", "application"},
		},
		Descriptor: `project:
  name: {{quote .ProjectName}}
  group_id: {{quote .Variables.group_id}}
  base_namespace: {{quote (printf "%s.%s" .Variables.group_id (ident .ProjectName))}}
  version: 1.0.0
settings:
  plugin_repositories: [google, mavenCentral, gradlePluginPortal]
  dependency_repositories: [google, mavenCentral]
properties:
  - key: org.gradle.jvmargs
    value: -Xmx2048m -Dfile.encoding=UTF-8
  - key: android.useAndroidX
    value: "true"
  - key: kotlin.code.style
    value: official
catalog:
  versions:
    - key: agp
      value: 8.5.0
    - key: kotlin
      value: 2.0.0
    - key: coreKtx
      value: 1.13.1
{{- if .Variables.compose}}
    - key: activityCompose
      value: 1.9.0
{{- end}}
  libraries:
    - key: androidx-core-ktx
      module: androidx.core:core-ktx
      version: coreKtx
{{- if .Variables.compose}}
    - key: androidx-activity-compose
      module: androidx.activity:activity-compose
      version: activityCompose
{{- end}}
  plugins:
    - key: android-application
      id: com.android.application
      version: agp
    - key: kotlin-android
      id: org.jetbrains.kotlin.android
      version: kotlin
modules:
  - name: app
    plugins:
      - catalog: android-application
        code: |
          android {
              namespace = "{{.Variables.group_id}}.{{ident .ProjectName}}"
              compileSdk = 34

              defaultConfig {
                  minSdk = {{.Variables.min_sdk}}
              }
          }
      - catalog: kotlin-android
    dependencies:
      - kind: implementation
        library: androidx-core-ktx
{{- if .Variables.compose}}
      - kind: implementation
        library: androidx-activity-compose
{{- end}}
      - kind: testImplementation
        coordinate: junit:junit:4.13.2
`,
	}
}

// NewAndroidMultiModulePreset creates an Android application split into
// feature modules
func NewAndroidMultiModulePreset() *Preset {
	return &Preset{
		Name:        "android-multi-module",
		Description: "Android application with one module per feature",
		Version:     "1.0.0",
		Variables: []*Variable{
			groupIDVariable,
			minSdkVariable,
			{
				Name:        "features",
				Description: "Comma-separated feature module names",
				Type:        VariableTypeString,
				Default:     "home, settings",
				Prompt:      "Feature modules",
			},
		},
		Metadata: map[string]interface{}{
			"category": "android",
			"tags":     []string{"android", "modular"},
		},
		Descriptor: `project:
  name: {{quote .ProjectName}}
  group_id: {{quote .Variables.group_id}}
  base_namespace: {{quote (printf "%s.%s" .Variables.group_id (ident .ProjectName))}}
  version: 1.0.0
settings:
  plugin_repositories: [google, mavenCentral, gradlePluginPortal]
  dependency_repositories: [google, mavenCentral]
properties:
  - key: org.gradle.jvmargs
    value: -Xmx4096m -Dfile.encoding=UTF-8
  - key: android.useAndroidX
    value: "true"
  - key: org.gradle.parallel
    value: "true"
catalog:
  versions:
    - key: agp
      value: 8.5.0
    - key: kotlin
      value: 2.0.0
  plugins:
    - key: android-application
      id: com.android.application
      version: agp
    - key: android-library
      id: com.android.library
      version: agp
    - key: kotlin-android
      id: org.jetbrains.kotlin.android
      version: kotlin
modules:
  - name: app
    plugins:
      - catalog: android-application
        code: |
          android {
              namespace = "{{.Variables.group_id}}.{{ident .ProjectName}}"
              compileSdk = 34

              defaultConfig {
                  minSdk = {{.Variables.min_sdk}}
              }
          }
      - catalog: kotlin-android
    blocks:
      - name: dependencies
        body:
{{- range $f := split .Variables.features}}
          - {{quote (printf "implementation(project(\":feature:%s\"))" $f)}}
{{- end}}
{{- range $f := split .Variables.features}}
  - name: {{quote (printf "feature:%s" $f)}}
    plugins:
      - catalog: android-library
        code: |
          android {
              namespace = "{{$.Variables.group_id}}.{{ident $.ProjectName}}.feature.{{ident $f}}"
              compileSdk = 34
          }
      - catalog: kotlin-android
{{- end}}
`,
	}
}

// NewKotlinLibraryPreset creates a JVM library
func NewKotlinLibraryPreset() *Preset {
	return &Preset{
		Name:        "kotlin-library",
		Description: "Kotlin/JVM library, optionally published to Maven",
		Version:     "1.0.0",
		Variables: []*Variable{
			groupIDVariable,
			{
				Name:        "kotlin_version",
				Description: "Kotlin Gradle plugin version",
				Type:        VariableTypeString,
				Default:     "2.0.0",
				Prompt:      "Kotlin version",
			},
			{
				Name:        "jvm_toolchain",
				Description: "JVM toolchain version",
				Type:        VariableTypeSelect,
				Default:     "17",
				Options:     []string{"11", "17", "21"},
				Prompt:      "JVM toolchain",
			},
			{
				Name:        "publish",
				Description: "Apply maven-publish",
				Type:        VariableTypeConfirm,
				Default:     false,
				Prompt:      "Publish to Maven?",
			},
		},
		Metadata: map[string]interface{}{
			"category": "jvm",
			"tags":     []string{"kotlin", "library"},
		},
		Descriptor: `project:
  name: {{quote .ProjectName}}
  group_id: {{quote .Variables.group_id}}
  version: 0.1.0
settings:
  plugin_repositories: [gradlePluginPortal, mavenCentral]
  dependency_repositories: [mavenCentral]
properties:
  - key: kotlin.code.style
    value: official
modules:
  - name: lib
    plugins:
      - kind: kotlin
        id: jvm
        version: {{quote .Variables.kotlin_version}}
      - id: java-library
{{- if .Variables.publish}}
      - id: maven-publish
{{- end}}
    dependencies:
      - kind: testImplementation
        coordinate: org.jetbrains.kotlin:kotlin-test
    blocks:
      - name: kotlin
        body: ["jvmToolchain({{.Variables.jvm_toolchain}})"]
`,
	}
}

package registry

// DefaultProject is the project identifier of the built-in registry.
const DefaultProject = "analytics-data-mart"

// DefaultDefinition returns the built-in registry definition.
func DefaultDefinition() Definition {
	return Definition{
		GCP: GCPConfig{Project: ProjectConfig{ID: DefaultProject}},
		Sources: map[string]Source{
			"appsflyer": {
				Dataset: "adm_appsflyer_reporting",
				Tables: map[string]string{
					"installs": "installs",
					"events":   "events",
				},
			},
			"ironsource": {
				Dataset: "adm_ironsource_raw",
				Tables: map[string]string{
					"impressions": "impression",
				},
			},
		},
	}
}

// Default returns a new Registry built from DefaultDefinition.
func Default(opts ...Option) *Registry {
	r, err := New(DefaultDefinition(), opts...)
	if err != nil {
		panic("registry: invalid default definition: " + err.Error())
	}
	return r
}

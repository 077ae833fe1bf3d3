package preset

// Builtins returns the built-in one-click presets.
func Builtins() []*Preset {
	return []*Preset{
		{
			Name:        "agents-only",
			Description: "Expose only the agents endpoint and hide model plumbing",
			Edits: []Edit{
				{FieldID: "endpoints.enabled", Value: []string{"agents"}},
				{FieldID: "interface.modelSelect", Value: false},
				{FieldID: "interface.parameters", Value: false},
				{FieldID: "interface.presets", Value: false},
				{FieldID: "interface.endpointsMenu", Value: false},
				{FieldID: "interface.agents", Value: true},
			},
		},
		{
			Name:        "email-mailgun",
			Description: "Deliver mail through Mailgun and enable password reset",
			Edits: []Edit{
				{FieldID: "email.service", Value: "mailgun"},
				{FieldID: "registration.allowPasswordReset", Value: true},
			},
		},
		{
			Name:        "email-smtp",
			Description: "Deliver mail through a generic SMTP server",
			Edits: []Edit{
				{FieldID: "email.service", Value: "smtp"},
				{FieldID: "email.port", Value: 587},
				{FieldID: "registration.allowPasswordReset", Value: true},
			},
		},
		{
			Name:        "cache-redis",
			Description: "Cache in Redis (set database.redisURI separately)",
			Edits: []Edit{
				{FieldID: "cache.useRedis", Value: true},
			},
		},
		{
			Name:        "cache-memory",
			Description: "Cache in process memory",
			Edits: []Edit{
				{FieldID: "cache.useRedis", Value: false},
			},
		},
	}
}

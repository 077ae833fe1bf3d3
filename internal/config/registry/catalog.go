package registry

// RegisterDefaults registers the built-in field catalogue for the chat
// application: every environment and YAML setting the dashboard edits,
// grouped by tab.
func (r *Registry) RegisterDefaults() {
	// App tab
	r.MustRegister(Field{
		ID:          "app.title",
		Type:        TypeString,
		Default:     "LibreChat",
		Description: "Application title shown in the browser tab and header",
		Tab:         "app",
		EnvKey:      "APP_TITLE",
		Tags:        []string{"branding"},
	})

	r.MustRegister(Field{
		ID:          "app.customFooter",
		Type:        TypeString,
		Default:     "",
		Description: "Custom footer text (empty keeps the default footer)",
		Tab:         "app",
		EnvKey:      "CUSTOM_FOOTER",
		Tags:        []string{"branding"},
	})

	r.MustRegister(Field{
		ID:          "app.helpAndFAQURL",
		Type:        TypeString,
		Default:     "https://librechat.ai",
		Description: "URL for the Help and FAQ link",
		Tab:         "app",
		EnvKey:      "HELP_AND_FAQ_URL",
		Tags:        []string{"branding"},
	})

	r.MustRegister(Field{
		ID:          "app.configVersion",
		Type:        TypeString,
		Default:     "1.2.1",
		Description: "Version of the YAML configuration format",
		Tab:         "app",
		YAMLPath:    "version",
	})

	// Server tab
	r.MustRegister(Field{
		ID:          "server.host",
		Type:        TypeString,
		Default:     "localhost",
		Description: "Host address the server binds to",
		Tab:         "server",
		EnvKey:      "HOST",
	})

	r.MustRegister(Field{
		ID:          "server.port",
		Type:        TypeInt,
		Default:     3080,
		Description: "Port the server listens on",
		Tab:         "server",
		EnvKey:      "PORT",
		Minimum:     MinValue(1),
		Maximum:     MaxValue(65535),
	})

	r.MustRegister(Field{
		ID:          "server.domainClient",
		Type:        TypeString,
		Default:     "http://localhost:3080",
		Description: "Public URL of the client application",
		Tab:         "server",
		EnvKey:      "DOMAIN_CLIENT",
	})

	r.MustRegister(Field{
		ID:          "server.domainServer",
		Type:        TypeString,
		Default:     "http://localhost:3080",
		Description: "Public URL of the API server",
		Tab:         "server",
		EnvKey:      "DOMAIN_SERVER",
	})

	r.MustRegister(Field{
		ID:          "server.noIndex",
		Type:        TypeBool,
		Default:     true,
		Description: "Prevent search engines from indexing the instance",
		Tab:         "server",
		EnvKey:      "NO_INDEX",
	})

	// Database tab
	r.MustRegister(Field{
		ID:          "database.mongoURI",
		Type:        TypeString,
		Default:     "mongodb://127.0.0.1:27017/LibreChat",
		Description: "MongoDB connection string",
		Tab:         "database",
		EnvKey:      "MONGO_URI",
		Sensitive:   true,
	})

	r.MustRegister(Field{
		ID:          "database.redisURI",
		Type:        TypeString,
		Default:     "",
		Description: "Redis connection string (required when Redis caching is enabled)",
		Tab:         "database",
		EnvKey:      "REDIS_URI",
		Sensitive:   true,
		Tags:        []string{"cache"},
	})

	// Cache tab
	r.MustRegister(Field{
		ID:          "cache.useRedis",
		Type:        TypeBool,
		Default:     false,
		Description: "Use Redis instead of in-memory caching",
		Tab:         "cache",
		EnvKey:      "USE_REDIS",
		Tags:        []string{"cache"},
	})

	r.MustRegister(Field{
		ID:          "cache.staticMaxAge",
		Type:        TypeInt,
		Default:     172800,
		Description: "Cache lifetime for static assets, in seconds",
		Tab:         "cache",
		EnvKey:      "STATIC_CACHE_MAX_AGE",
		Minimum:     MinValue(0),
		Tags:        []string{"cache"},
	})

	// Auth tab
	r.MustRegister(Field{
		ID:          "auth.sessionExpiry",
		Type:        TypeInt,
		Default:     900000,
		Description: "Session expiry in milliseconds",
		Tab:         "auth",
		EnvKey:      "SESSION_EXPIRY",
		Minimum:     MinValue(1000),
	})

	r.MustRegister(Field{
		ID:          "auth.refreshTokenExpiry",
		Type:        TypeInt,
		Default:     604800000,
		Description: "Refresh token expiry in milliseconds",
		Tab:         "auth",
		EnvKey:      "REFRESH_TOKEN_EXPIRY",
		Minimum:     MinValue(1000),
	})

	r.MustRegister(Field{
		ID:          "auth.jwtSecret",
		Type:        TypeString,
		Default:     "",
		Description: "Secret used to sign JWT access tokens",
		Tab:         "auth",
		EnvKey:      "JWT_SECRET",
		Sensitive:   true,
	})

	r.MustRegister(Field{
		ID:          "auth.jwtRefreshSecret",
		Type:        TypeString,
		Default:     "",
		Description: "Secret used to sign JWT refresh tokens",
		Tab:         "auth",
		EnvKey:      "JWT_REFRESH_SECRET",
		Sensitive:   true,
	})

	// Registration tab
	r.MustRegister(Field{
		ID:          "registration.allowRegistration",
		Type:        TypeBool,
		Default:     true,
		Description: "Allow new users to register with email and password",
		Tab:         "registration",
		EnvKey:      "ALLOW_REGISTRATION",
	})

	r.MustRegister(Field{
		ID:          "registration.allowEmailLogin",
		Type:        TypeBool,
		Default:     true,
		Description: "Allow login with email and password",
		Tab:         "registration",
		EnvKey:      "ALLOW_EMAIL_LOGIN",
	})

	r.MustRegister(Field{
		ID:          "registration.allowSocialLogin",
		Type:        TypeBool,
		Default:     false,
		Description: "Allow login via social providers",
		Tab:         "registration",
		EnvKey:      "ALLOW_SOCIAL_LOGIN",
	})

	r.MustRegister(Field{
		ID:          "registration.allowSocialRegistration",
		Type:        TypeBool,
		Default:     false,
		Description: "Allow registration via social providers",
		Tab:         "registration",
		EnvKey:      "ALLOW_SOCIAL_REGISTRATION",
	})

	r.MustRegister(Field{
		ID:          "registration.allowPasswordReset",
		Type:        TypeBool,
		Default:     false,
		Description: "Allow password reset (requires a working email provider)",
		Tab:         "registration",
		EnvKey:      "ALLOW_PASSWORD_RESET",
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "registration.socialLogins",
		Type:        TypeArray,
		Default:     []string{"github", "google", "discord", "openid", "facebook"},
		Description: "Social providers shown on the login page",
		Tab:         "registration",
		YAMLPath:    "registration.socialLogins",
	})

	// Email tab
	r.MustRegister(Field{
		ID:          "email.service",
		Type:        TypeEnum,
		Default:     "",
		Description: "Email delivery provider",
		Tab:         "email",
		EnvKey:      "EMAIL_SERVICE",
		Enum:        []any{"", "smtp", "mailgun"},
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.host",
		Type:        TypeString,
		Default:     "",
		Description: "SMTP server hostname",
		Tab:         "email",
		EnvKey:      "EMAIL_HOST",
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.port",
		Type:        TypeInt,
		Default:     587,
		Description: "SMTP server port",
		Tab:         "email",
		EnvKey:      "EMAIL_PORT",
		Minimum:     MinValue(1),
		Maximum:     MaxValue(65535),
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.username",
		Type:        TypeString,
		Default:     "",
		Description: "SMTP username",
		Tab:         "email",
		EnvKey:      "EMAIL_USERNAME",
		Sensitive:   true,
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.password",
		Type:        TypeString,
		Default:     "",
		Description: "SMTP password",
		Tab:         "email",
		EnvKey:      "EMAIL_PASSWORD",
		Sensitive:   true,
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.from",
		Type:        TypeString,
		Default:     "",
		Description: "Sender address for outgoing mail",
		Tab:         "email",
		EnvKey:      "EMAIL_FROM",
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.fromName",
		Type:        TypeString,
		Default:     "",
		Description: "Sender display name for outgoing mail",
		Tab:         "email",
		EnvKey:      "EMAIL_FROM_NAME",
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.mailgunAPIKey",
		Type:        TypeString,
		Default:     "",
		Description: "Mailgun API key",
		Tab:         "email",
		EnvKey:      "MAILGUN_API_KEY",
		Sensitive:   true,
		Tags:        []string{"email"},
	})

	r.MustRegister(Field{
		ID:          "email.mailgunDomain",
		Type:        TypeString,
		Default:     "",
		Description: "Mailgun sending domain",
		Tab:         "email",
		EnvKey:      "MAILGUN_DOMAIN",
		Tags:        []string{"email"},
	})

	// Rate limit tab
	r.MustRegister(Field{
		ID:          "rateLimit.limitConcurrentMessages",
		Type:        TypeBool,
		Default:     true,
		Description: "Limit the number of concurrent messages per user",
		Tab:         "rateLimit",
		EnvKey:      "LIMIT_CONCURRENT_MESSAGES",
	})

	r.MustRegister(Field{
		ID:          "rateLimit.concurrentMessageMax",
		Type:        TypeInt,
		Default:     2,
		Description: "Maximum concurrent messages per user",
		Tab:         "rateLimit",
		EnvKey:      "CONCURRENT_MESSAGE_MAX",
		Minimum:     MinValue(1),
	})

	r.MustRegister(Field{
		ID:          "rateLimit.banViolations",
		Type:        TypeBool,
		Default:     true,
		Description: "Ban users who exceed rate limits",
		Tab:         "rateLimit",
		EnvKey:      "BAN_VIOLATIONS",
	})

	r.MustRegister(Field{
		ID:          "rateLimit.banDuration",
		Type:        TypeInt,
		Default:     7200000,
		Description: "Ban duration in milliseconds",
		Tab:         "rateLimit",
		EnvKey:      "BAN_DURATION",
		Minimum:     MinValue(0),
	})

	r.MustRegister(Field{
		ID:          "rateLimit.banInterval",
		Type:        TypeInt,
		Default:     20,
		Description: "Violation score interval that triggers a ban",
		Tab:         "rateLimit",
		EnvKey:      "BAN_INTERVAL",
		Minimum:     MinValue(1),
	})

	r.MustRegister(Field{
		ID:          "rateLimit.loginMax",
		Type:        TypeInt,
		Default:     7,
		Description: "Maximum login attempts per window",
		Tab:         "rateLimit",
		EnvKey:      "LOGIN_MAX",
		Minimum:     MinValue(1),
	})

	r.MustRegister(Field{
		ID:          "rateLimit.loginWindow",
		Type:        TypeInt,
		Default:     5,
		Description: "Login attempt window in minutes",
		Tab:         "rateLimit",
		EnvKey:      "LOGIN_WINDOW",
		Minimum:     MinValue(1),
	})

	// Endpoints tab
	r.MustRegister(Field{
		ID:          "endpoints.enabled",
		Type:        TypeArray,
		Default:     []string{"openAI", "anthropic", "google", "assistants", "agents"},
		Description: "Model endpoints available to users",
		Tab:         "endpoints",
		EnvKey:      "ENDPOINTS",
		Tags:        []string{"endpoints"},
	})

	r.MustRegister(Field{
		ID:          "endpoints.openAIKey",
		Type:        TypeString,
		Default:     "",
		Description: "OpenAI API key",
		Tab:         "endpoints",
		EnvKey:      "OPENAI_API_KEY",
		Sensitive:   true,
	})

	r.MustRegister(Field{
		ID:          "endpoints.anthropicKey",
		Type:        TypeString,
		Default:     "",
		Description: "Anthropic API key",
		Tab:         "endpoints",
		EnvKey:      "ANTHROPIC_API_KEY",
		Sensitive:   true,
	})

	r.MustRegister(Field{
		ID:          "endpoints.googleKey",
		Type:        TypeString,
		Default:     "",
		Description: "Google AI API key",
		Tab:         "endpoints",
		EnvKey:      "GOOGLE_KEY",
		Sensitive:   true,
	})

	r.MustRegister(Field{
		ID:          "endpoints.titleConvo",
		Type:        TypeBool,
		Default:     true,
		Description: "Generate conversation titles automatically",
		Tab:         "endpoints",
		EnvKey:      "TITLE_CONVO",
	})

	// Agents tab
	r.MustRegister(Field{
		ID:          "agents.disableBuilder",
		Type:        TypeBool,
		Default:     false,
		Description: "Hide the agent builder interface",
		Tab:         "agents",
		YAMLPath:    "endpoints.agents.disableBuilder",
		Tags:        []string{"agents"},
	})

	r.MustRegister(Field{
		ID:          "agents.recursionLimit",
		Type:        TypeInt,
		Default:     25,
		Description: "Default recursion limit for agent runs",
		Tab:         "agents",
		YAMLPath:    "endpoints.agents.recursionLimit",
		Minimum:     MinValue(1),
		Maximum:     MaxValue(100),
		Tags:        []string{"agents"},
	})

	r.MustRegister(Field{
		ID:          "agents.capabilities",
		Type:        TypeArray,
		Default:     []string{"execute_code", "file_search", "actions", "tools"},
		Description: "Capabilities available to agents",
		Tab:         "agents",
		YAMLPath:    "endpoints.agents.capabilities",
		Tags:        []string{"agents"},
	})

	// Interface tab
	r.MustRegister(Field{
		ID:          "interface.customWelcome",
		Type:        TypeString,
		Default:     "",
		Description: "Custom welcome message on the landing screen",
		Tab:         "interface",
		YAMLPath:    "interface.customWelcome",
	})

	r.MustRegister(Field{
		ID:          "interface.privacyPolicy.externalUrl",
		Type:        TypeString,
		Default:     "",
		Description: "Privacy policy link",
		Tab:         "interface",
		YAMLPath:    "interface.privacyPolicy.externalUrl",
	})

	r.MustRegister(Field{
		ID:          "interface.privacyPolicy.openNewTab",
		Type:        TypeBool,
		Default:     true,
		Description: "Open the privacy policy in a new tab",
		Tab:         "interface",
		YAMLPath:    "interface.privacyPolicy.openNewTab",
	})

	r.MustRegister(Field{
		ID:          "interface.termsOfService.externalUrl",
		Type:        TypeString,
		Default:     "",
		Description: "Terms of service link",
		Tab:         "interface",
		YAMLPath:    "interface.termsOfService.externalUrl",
	})

	r.MustRegister(Field{
		ID:          "interface.endpointsMenu",
		Type:        TypeBool,
		Default:     true,
		Description: "Show the endpoints menu",
		Tab:         "interface",
		YAMLPath:    "interface.endpointsMenu",
	})

	r.MustRegister(Field{
		ID:          "interface.modelSelect",
		Type:        TypeBool,
		Default:     true,
		Description: "Show the model selection dropdown",
		Tab:         "interface",
		YAMLPath:    "interface.modelSelect",
	})

	r.MustRegister(Field{
		ID:          "interface.parameters",
		Type:        TypeBool,
		Default:     true,
		Description: "Show the model parameters panel",
		Tab:         "interface",
		YAMLPath:    "interface.parameters",
	})

	r.MustRegister(Field{
		ID:          "interface.sidePanel",
		Type:        TypeBool,
		Default:     true,
		Description: "Show the right side panel",
		Tab:         "interface",
		YAMLPath:    "interface.sidePanel",
	})

	r.MustRegister(Field{
		ID:          "interface.presets",
		Type:        TypeBool,
		Default:     true,
		Description: "Allow user-defined conversation presets",
		Tab:         "interface",
		YAMLPath:    "interface.presets",
	})

	r.MustRegister(Field{
		ID:          "interface.prompts",
		Type:        TypeBool,
		Default:     true,
		Description: "Show the prompt library",
		Tab:         "interface",
		YAMLPath:    "interface.prompts",
	})

	r.MustRegister(Field{
		ID:          "interface.bookmarks",
		Type:        TypeBool,
		Default:     true,
		Description: "Allow conversation bookmarks",
		Tab:         "interface",
		YAMLPath:    "interface.bookmarks",
	})

	r.MustRegister(Field{
		ID:          "interface.multiConvo",
		Type:        TypeBool,
		Default:     true,
		Description: "Allow parallel multi-model conversations",
		Tab:         "interface",
		YAMLPath:    "interface.multiConvo",
	})

	r.MustRegister(Field{
		ID:          "interface.agents",
		Type:        TypeBool,
		Default:     true,
		Description: "Show agents in the UI",
		Tab:         "interface",
		YAMLPath:    "interface.agents",
		Tags:        []string{"agents"},
	})

	r.MustRegister(Field{
		ID:          "interface.webSearch",
		Type:        TypeBool,
		Default:     true,
		Description: "Show the web search toggle",
		Tab:         "interface",
		YAMLPath:    "interface.webSearch",
		Tags:        []string{"search"},
	})

	// Search tab
	r.MustRegister(Field{
		ID:          "search.enabled",
		Type:        TypeBool,
		Default:     false,
		Description: "Enable conversation search via Meilisearch",
		Tab:         "search",
		EnvKey:      "SEARCH",
		Tags:        []string{"search"},
	})

	r.MustRegister(Field{
		ID:          "search.meiliHost",
		Type:        TypeString,
		Default:     "http://0.0.0.0:7700",
		Description: "Meilisearch host URL",
		Tab:         "search",
		EnvKey:      "MEILI_HOST",
		Tags:        []string{"search"},
	})

	r.MustRegister(Field{
		ID:          "search.meiliMasterKey",
		Type:        TypeString,
		Default:     "",
		Description: "Meilisearch master key",
		Tab:         "search",
		EnvKey:      "MEILI_MASTER_KEY",
		Sensitive:   true,
		Tags:        []string{"search"},
	})

	r.MustRegister(Field{
		ID:          "search.serperAPIKey",
		Type:        TypeString,
		Default:     "",
		Description: "Serper API key for web search",
		Tab:         "search",
		EnvKey:      "SERPER_API_KEY",
		Sensitive:   true,
		Tags:        []string{"search"},
	})

	r.MustRegister(Field{
		ID:          "search.firecrawlAPIKey",
		Type:        TypeString,
		Default:     "",
		Description: "Firecrawl API key for web scraping",
		Tab:         "search",
		EnvKey:      "FIRECRAWL_API_KEY",
		Sensitive:   true,
		Tags:        []string{"search"},
	})

	// Files tab
	r.MustRegister(Field{
		ID:          "files.serverFileSizeLimit",
		Type:        TypeInt,
		Default:     512,
		Description: "Maximum upload size in megabytes",
		Tab:         "files",
		YAMLPath:    "fileConfig.serverFileSizeLimit",
		Minimum:     MinValue(1),
	})

	r.MustRegister(Field{
		ID:          "files.avatarSizeLimit",
		Type:        TypeInt,
		Default:     2,
		Description: "Maximum avatar size in megabytes",
		Tab:         "files",
		YAMLPath:    "fileConfig.avatarSizeLimit",
		Minimum:     MinValue(1),
	})

	r.MustRegister(Field{
		ID:          "files.fileLimit",
		Type:        TypeInt,
		Default:     10,
		Description: "Maximum files per request",
		Tab:         "files",
		YAMLPath:    "fileConfig.endpoints.default.fileLimit",
		Minimum:     MinValue(1),
	})

	// Logging tab
	r.MustRegister(Field{
		ID:          "logging.debugLogging",
		Type:        TypeBool,
		Default:     false,
		Description: "Write debug-level logs to file",
		Tab:         "logging",
		EnvKey:      "DEBUG_LOGGING",
	})

	r.MustRegister(Field{
		ID:          "logging.debugConsole",
		Type:        TypeBool,
		Default:     false,
		Description: "Mirror debug logs to the console",
		Tab:         "logging",
		EnvKey:      "DEBUG_CONSOLE",
	})
}

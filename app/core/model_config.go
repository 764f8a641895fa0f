package core

type Configuration struct {
	Database   ConfigurationDatabase   `json:"database"`
	Server     ConfigurationServer     `json:"server"`
	MailServer ConfigurationMailServer `json:"mail_server"`
}

type ConfigurationDatabase struct {
	Host          string `json:"host"`
	Database      string `json:"database"`
	User          string `json:"user"`
	Password      string `json:"password"`
	Port          int    `json:"port"`
	DoAutoMigrate bool   `json:"do_auto_migrate"`
	DoInsert      bool   `json:"do_insert"`
	Debug         bool   `json:"debug"`
}

type ConfigurationServer struct {
	Hostname        string `json:"hostname"`
	InternalPort    int    `json:"internal_port"`
	WithSSL         bool   `json:"with_ssl"`
	SSLCertFile     string `json:"ssl_cert_file"`
	SSLKeyFile      string `json:"ssl_key_file"`
	DeliverFrontEnd bool   `json:"deliver_front_end"`
	FrontEndPath    string `json:"front_end_path"`
	UploadFilepath  string `json:"upload_filepath"`
	TmpPath         string `json:"tmp_path"`
	ChartFontFile   string `json:"chart_font_file"`
}

type ConfigurationMailServer struct {
	SmtpHost     string   `json:"smtp_host"`
	SmtpPort     int      `json:"smtp_port"`
	SmtpUsername string   `json:"smtp_username"`
	SmtpPassword string   `json:"smtp_password"`
	SummaryFrom  string   `json:"summary_from"`
	SummaryTo    []string `json:"summary_to"`
}

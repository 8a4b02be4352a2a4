package main

// GlobalFlags holds persistent flags that are not backed by the config file
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
}

// CreateFlags holds flags for the create command
type CreateFlags struct {
	Image string
}

// DeleteFlags holds flags for the delete command
type DeleteFlags struct {
	Yes bool
}

// HistoryFlags holds flags for the history command
type HistoryFlags struct {
	Limit int
}

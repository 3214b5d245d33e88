package config

type Config struct {
	ScriptDir  string
	OutDir     string
	WriteCSV   bool
	WriteChart bool
	Derivative bool
	RunChecks  bool
	Workers    int
	Quiet      bool
	Inspector  string
	ChartTitle string
}

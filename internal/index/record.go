package index

import "time"

// Record is one indexed repository working directory.
// FullPath is its identity within a Store.
type Record struct {
	Host      string    `toml:"host" json:"host"`
	Owner     string    `toml:"owner" json:"owner"`
	Repo      string    `toml:"repo" json:"repo"`
	RemoteURL string    `toml:"remote_url" json:"remote_url"`
	BaseDir   string    `toml:"base_dir" json:"base_dir"`
	FullPath  string    `toml:"full_path" json:"full_path"`
	CreatedAt time.Time `toml:"created_at" json:"created_at"`
	UpdatedAt time.Time `toml:"updated_at" json:"updated_at"`
}

// FullName returns "owner/repo".
func (r Record) FullName() string {
	return r.Owner + "/" + r.Repo
}

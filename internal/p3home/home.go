// Package p3home locates the primer3 installation: the directory holding
// the primer3_core, ntthal and oligotm executables and the primer3_config
// thermodynamic parameter tables.
package p3home

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvVar names the installation directory.
const EnvVar = "PRIMER3HOME"

// ConfigDir is the parameter table directory inside the installation.
const ConfigDir = "primer3_config"

// ErrNoHome is returned when no installation directory can be found.
var ErrNoHome = errors.New(EnvVar + " is not set and no primer3 installation was found next to the executable")

// PathError reports a path that does not exist after resolution.
type PathError struct {
	Key   string // boulder tag, empty outside the formatter
	Value string // as given
	Tried string // resolved path that was probed
}

func (e *PathError) Error() string {
	if e.Key == "" {
		return "primer3 path " + e.Value + " not found (tried " + e.Tried + ")"
	}
	return e.Key + ": path " + e.Value + " not found (tried " + e.Tried + ")"
}

// Home is a located installation. The zero Home resolves tools via PATH.
type Home struct {
	Dir string
}

// LoadEnv reads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadEnv() { _ = godotenv.Load() }

// Locate finds the installation: explicit dir, then $PRIMER3HOME, then
// directories relative to the running executable.
func Locate(explicit string) (Home, error) {
	if explicit != "" {
		return checkDir(explicit)
	}
	if env := strings.TrimSpace(os.Getenv(EnvVar)); env != "" {
		return checkDir(env)
	}
	exe, err := os.Executable()
	if err == nil {
		base := filepath.Dir(exe)
		for _, c := range []string{
			filepath.Join(base, "primer3"),
			filepath.Join(base, "..", "share", "primer3"),
			base,
		} {
			if isDir(filepath.Join(c, ConfigDir)) {
				return Home{Dir: filepath.Clean(c)}, nil
			}
		}
	}
	return Home{}, ErrNoHome
}

func checkDir(dir string) (Home, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Home{}, errors.Wrapf(err, "resolving %s", dir)
	}
	if !isDir(abs) {
		return Home{}, &PathError{Value: dir, Tried: abs}
	}
	return Home{Dir: abs}, nil
}

func isDir(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

// ThermoPath is the parameter directory with a trailing separator, the
// form primer3 expects for PRIMER_THERMODYNAMIC_PARAMETERS_PATH.
func (h Home) ThermoPath() string {
	if h.Dir == "" {
		return ""
	}
	return filepath.Join(h.Dir, ConfigDir) + string(filepath.Separator)
}

// Tool returns the path of an engine executable: inside Dir when it
// exists there, else whatever PATH finds.
func (h Home) Tool(name string) (string, error) {
	if h.Dir != "" {
		p := filepath.Join(h.Dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	p, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(err, "locating %s", name)
	}
	return p, nil
}

// ResolvePath implements boulder.PathResolver. An existing directory is
// used verbatim; anything else is taken relative to Dir after dropping
// leading ./ and ../ markers.
func (h Home) ResolvePath(key, value string) (string, error) {
	if isDir(value) {
		return value, nil
	}
	rel := stripRelMarkers(filepath.ToSlash(value))
	tried := filepath.Join(h.Dir, filepath.FromSlash(rel))
	if !isDir(tried) {
		return "", &PathError{Key: key, Value: value, Tried: tried}
	}
	return tried + string(filepath.Separator), nil
}

func stripRelMarkers(p string) string {
	for {
		switch {
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		case strings.HasPrefix(p, "../"):
			p = p[3:]
		default:
			return p
		}
	}
}

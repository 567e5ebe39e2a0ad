// Package datarecording provides the SQLite-backed recording backend. It
// persists iteration records labeled with their iteration coordinates,
// together with metadata about the run that produced them. The backend
// sits behind the recording package's Recordable capabilities; the core
// never depends on it.
package datarecording

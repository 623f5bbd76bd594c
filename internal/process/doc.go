// Package process implements the child-process collaborator over os/exec.
//
// It spawns a program with stdin, stdout and stderr redirected to pipes and
// exposes termination and reaping, leaving all pipe traffic to the bridge's
// workers.
package process

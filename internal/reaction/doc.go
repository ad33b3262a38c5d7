// Package reaction holds morphogen reaction network models implementing
// the kinetics.System interface.
package reaction

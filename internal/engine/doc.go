// Package engine drives a full regeneration: resolve the registry's loadable
// entries into a total order, render and encode the loader profile, and
// publish it atomically when its content changed. A resolution conflict
// leaves any previously generated profile untouched.
package engine

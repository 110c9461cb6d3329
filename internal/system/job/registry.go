// Released under an MIT license. See LICENSE.

package job

// Registry holds background jobs until they are explicitly reaped.
// A job that has already finished keeps its slot until ReapAll.
type Registry struct {
	jobs []*T
}

// NewRegistry creates an empty background job registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add inserts j into the registry.
func (r *Registry) Add(j *T) {
	r.jobs = append(r.jobs, j)
}

// Jobs returns the jobs currently held, in insertion order.
func (r *Registry) Jobs() []*T {
	js := make([]*T, len(r.jobs))
	copy(js, r.jobs)

	return js
}

// Len returns the number of jobs not yet reaped.
func (r *Registry) Len() int {
	return len(r.jobs)
}

// ReapAll waits for every job in insertion order and removes it.
// Wait errors are ignored; the job is removed regardless.
func (r *Registry) ReapAll() {
	for len(r.jobs) > 0 {
		j := r.jobs[0]

		_ = j.Wait()

		r.jobs[0] = nil
		r.jobs = r.jobs[1:]
	}

	r.jobs = nil
}

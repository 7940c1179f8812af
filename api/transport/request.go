package transport

// TodosPost toggles the finished flag of the task identified by Hash.
type TodosPost struct {
	Hash      string `json:"hash"`
	Completed bool   `json:"completed"`
}

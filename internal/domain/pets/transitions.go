package pets

// Aristas que un rehomer/admin puede pedir explícitamente.
// available -> pending_decision no está: solo ocurre al aprobarse una solicitud.
var callerEdges = map[Status][]Status{
	StatusDraft:           {StatusAvailable},
	StatusAvailable:       {StatusRemoved},
	StatusPendingDecision: {StatusRemoved, StatusAdopted},
}

func canTransition(from, to Status) bool {
	for _, s := range callerEdges[from] {
		if s == to {
			return true
		}
	}
	return false
}

package entities

// Copy-on-write helpers over the RepairOrder aggregate. Every method takes
// the order by value and returns a new value; callers persist the result via
// the repository, which again stores its own copy. The audit collections are
// ordered most-recent-first, so appends prepend.

// MaxErrors caps the business-error audit log; the oldest entries are
// dropped once the cap is reached.
const MaxErrors = 10

// PushEvent prepends an event to the audit trail.
func (o RepairOrder) PushEvent(e Event) RepairOrder {
	events := make([]Event, 0, len(o.Events)+1)
	events = append(events, e)
	events = append(events, o.Events...)
	o.Events = events
	return o
}

// PushError prepends a business error, keeping at most MaxErrors entries.
func (o RepairOrder) PushError(e BusinessError) RepairOrder {
	errors := make([]BusinessError, 0, MaxErrors)
	errors = append(errors, e)
	keep := len(o.Errors)
	if keep > MaxErrors-1 {
		keep = MaxErrors - 1
	}
	errors = append(errors, o.Errors[:keep]...)
	o.Errors = errors
	return o
}

// PrependService inserts a new service at the head of the services list.
func (o RepairOrder) PrependService(s Service) RepairOrder {
	services := make([]Service, 0, len(o.Services)+1)
	services = append(services, s)
	services = append(services, o.Services...)
	o.Services = services
	return o
}

// PrependAuthorization inserts a new authorization record at the head of the
// authorizations list.
func (o RepairOrder) PrependAuthorization(a Authorization) RepairOrder {
	auths := make([]Authorization, 0, len(o.Authorizations)+1)
	auths = append(auths, a)
	auths = append(auths, o.Authorizations...)
	o.Authorizations = auths
	return o
}

// WithServices replaces the services list.
func (o RepairOrder) WithServices(services []Service) RepairOrder {
	o.Services = services
	return o
}

// RecomputeEstimates rederives SubtotalEstimated and AuthorizedAmount from
// the current line items.
func (o RepairOrder) RecomputeEstimates() RepairOrder {
	o.SubtotalEstimated = SubtotalEstimated(o)
	o.AuthorizedAmount = AuthorizedAmount(o.SubtotalEstimated)
	return o
}

// RecomputeReal rederives RealTotal from the current line items.
func (o RepairOrder) RecomputeReal() RepairOrder {
	o.RealTotal = RealTotal(o)
	return o
}

// Clone returns a deep copy of the order. Repositories clone on load and
// save so no caller ever aliases stored state.
func (o RepairOrder) Clone() RepairOrder {
	out := o

	out.Services = make([]Service, len(o.Services))
	for i, s := range o.Services {
		cs := s
		cs.Components = make([]Component, len(s.Components))
		copy(cs.Components, s.Components)
		out.Services[i] = cs
	}

	out.Authorizations = make([]Authorization, len(o.Authorizations))
	copy(out.Authorizations, o.Authorizations)

	out.Events = make([]Event, len(o.Events))
	copy(out.Events, o.Events)

	out.Errors = make([]BusinessError, len(o.Errors))
	copy(out.Errors, o.Errors)

	return out
}

// FindService returns the index of the service with the given id, or -1.
func (o RepairOrder) FindService(serviceID string) int {
	for i, s := range o.Services {
		if s.ID == serviceID {
			return i
		}
	}
	return -1
}

// FindComponent returns the index of the component with the given id inside
// the service, or -1.
func (s Service) FindComponent(componentID string) int {
	for i, c := range s.Components {
		if c.ID == componentID {
			return i
		}
	}
	return -1
}

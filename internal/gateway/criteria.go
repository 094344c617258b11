package gateway

// Entity names an object type of the monitoring API.
type Entity string

const (
	EntityUser          Entity = "user"
	EntityRole          Entity = "role"
	EntityUserGroup     Entity = "usergroup"
	EntityUserDirectory Entity = "userdirectory"
)

// Criteria describes a get request. Empty search strings, empty filter and id lists
// and a zero limit all mean "no constraint" and are left out of the call.
type Criteria struct {
	Output []string
	Search map[string]string
	Filter map[string][]string
	// IDs holds id-set parameters such as "roleids" or "usrgrpids".
	IDs map[string][]string
	// Select holds related-object selections such as "selectRole".
	Select map[string][]string
	// Flags holds boolean request options such as "getAccess".
	Flags map[string]bool
	Limit int
}

// Params renders the criteria as API request parameters.
func (c Criteria) Params() map[string]interface{} {
	params := make(map[string]interface{})

	if len(c.Output) > 0 {
		params["output"] = c.Output
	} else {
		params["output"] = "extend"
	}

	search := make(map[string]string)
	for field, value := range c.Search {
		if value != "" {
			search[field] = value
		}
	}
	if len(search) > 0 {
		params["search"] = search
	}

	filter := make(map[string][]string)
	for field, values := range c.Filter {
		if len(values) > 0 {
			filter[field] = values
		}
	}
	if len(filter) > 0 {
		params["filter"] = filter
	}

	for name, ids := range c.IDs {
		if len(ids) > 0 {
			params[name] = ids
		}
	}
	for name, fields := range c.Select {
		if len(fields) > 0 {
			params[name] = fields
		} else {
			params[name] = "extend"
		}
	}
	for name, on := range c.Flags {
		if on {
			params[name] = true
		}
	}

	if c.Limit > 0 {
		params["limit"] = c.Limit
	}
	return params
}

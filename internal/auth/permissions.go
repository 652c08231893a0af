package auth

// Resource represents a protected resource type.
type Resource string

// Protected resources.
const (
	ResourceUsers Resource = "users"
)

// Action represents an operation on a resource.
type Action string

// Operations on resources.
const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// rbacModel is the Casbin RBAC model used for permission checks.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && keyMatch(r.act, p.act)
`

// rbacPolicies are the default role permissions.
var rbacPolicies = [][]string{
	// Admins can do everything
	{"admin", "*", "*"},

	// Members can view the directory but not manage accounts
	{"member", "users", "read"},
}

package client

// Guard decisions for the three route gates. Pure functions of the session
// snapshot so they can drive any navigation layer.

type GuardAction int

const (
	ShowLoading GuardAction = iota
	Render
	Redirect
)

type GuardDecision struct {
	Action GuardAction
	Target string
}

const (
	LoginPath    = "/login"
	AdminHome    = "/admin"
	EmployeeHome = "/employee"
)

func roleHome(user *Account) string {
	if user.IsAdmin() {
		return AdminHome
	}
	return EmployeeHome
}

// GuardPublic renders only for anonymous visitors; a signed-in user is sent
// to their role home.
func GuardPublic(loading bool, user *Account) GuardDecision {
	if loading {
		return GuardDecision{Action: ShowLoading}
	}
	if user != nil {
		return GuardDecision{Action: Redirect, Target: roleHome(user)}
	}
	return GuardDecision{Action: Render}
}

// GuardAdmin renders only for admins; employees land on their own home, the
// anonymous on the login page.
func GuardAdmin(loading bool, user *Account) GuardDecision {
	if loading {
		return GuardDecision{Action: ShowLoading}
	}
	if user == nil {
		return GuardDecision{Action: Redirect, Target: LoginPath}
	}
	if !user.IsAdmin() {
		return GuardDecision{Action: Redirect, Target: EmployeeHome}
	}
	return GuardDecision{Action: Render}
}

// GuardEmployee mirrors GuardAdmin with the roles swapped.
func GuardEmployee(loading bool, user *Account) GuardDecision {
	if loading {
		return GuardDecision{Action: ShowLoading}
	}
	if user == nil {
		return GuardDecision{Action: Redirect, Target: LoginPath}
	}
	if user.IsAdmin() {
		return GuardDecision{Action: Redirect, Target: AdminHome}
	}
	return GuardDecision{Action: Render}
}

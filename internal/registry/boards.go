package registry

import "strings"

// Board describes one state licensing board's verification endpoint.
type Board struct {
	State       string
	Name        string
	VerifyURL   string
	NeedsScript bool // verification page requires a scripted browser
}

// boardsByState maps state codes to their licensing boards. Unmapped states
// fall back to the aggregate FSMB DocInfo search.
var boardsByState = map[string]Board{
	"CA": {State: "CA", Name: "Medical Board of California", VerifyURL: "https://www.mbc.ca.gov/Breeze/License_Verification.aspx"},
	"NY": {State: "NY", Name: "New York Office of the Professions", VerifyURL: "https://www.op.nysed.gov/verification-search"},
	"TX": {State: "TX", Name: "Texas Medical Board", VerifyURL: "https://profile.tmb.state.tx.us/Search/Verification"},
	"FL": {State: "FL", Name: "Florida Department of Health", VerifyURL: "https://mqa-internet.doh.state.fl.us/MQASearchServices/Home"},
	"IL": {State: "IL", Name: "Illinois IDFPR", VerifyURL: "https://www.idfpr.com/LicenseLookup/"},
	"PA": {State: "PA", Name: "Pennsylvania Licensing System", VerifyURL: "https://www.pals.pa.gov/#/page/search", NeedsScript: true},
	"OH": {State: "OH", Name: "Ohio eLicense", VerifyURL: "https://elicense.ohio.gov/oh_verifylicense"},
	"GA": {State: "GA", Name: "Georgia Secretary of State", VerifyURL: "https://verify.sos.ga.gov/verification/"},
	"NC": {State: "NC", Name: "North Carolina Medical Board", VerifyURL: "https://portal.ncmedboard.org/verification/search.aspx"},
	"MI": {State: "MI", Name: "Michigan LARA", VerifyURL: "https://aca-prod.accela.com/MILARA/Default.aspx", NeedsScript: true},
	"MA": {State: "MA", Name: "Massachusetts Check a License", VerifyURL: "https://checkalicense.mass.gov/"},
	"WA": {State: "WA", Name: "Washington DOH Credential Search", VerifyURL: "https://fortress.wa.gov/doh/providercredentialsearch/"},
	"AZ": {State: "AZ", Name: "Arizona Medical Board", VerifyURL: "https://azmd.gov/licenseverification"},
	"TN": {State: "TN", Name: "Tennessee Health Licensure", VerifyURL: "https://apps.health.tn.gov/Licensure/"},
	"MO": {State: "MO", Name: "Missouri Professional Registration", VerifyURL: "https://www.pr.mo.gov/licensee-search.asp"},
	"MD": {State: "MD", Name: "Maryland Board of Physicians", VerifyURL: "https://www.mbp.state.md.us/bpqapp/"},
	"WI": {State: "WI", Name: "Wisconsin DSPS", VerifyURL: "https://online.drl.wi.gov/LicenseLookup/"},
	"MN": {State: "MN", Name: "Minnesota Board of Medical Practice", VerifyURL: "https://mn.gov/boards/medical-practice/public/search/"},
	"CO": {State: "CO", Name: "Colorado DORA", VerifyURL: "https://apps.colorado.gov/dora/licensing/Lookup/LicenseLookup.aspx"},
	"AL": {State: "AL", Name: "Alabama Board of Medical Examiners", VerifyURL: "https://www.albme.org/ALABME/Verification"},
}

// fallbackBoard handles states without a dedicated entry.
var fallbackBoard = Board{
	Name:      "FSMB DocInfo",
	VerifyURL: "https://www.docinfo.org/",
}

// BoardFor returns the licensing board for a state code, falling back to the
// aggregate national search for unmapped states. The returned Board always
// has its State set to the requested code.
func BoardFor(state string) Board {
	code := strings.ToUpper(strings.TrimSpace(state))
	if b, ok := boardsByState[code]; ok {
		return b
	}
	b := fallbackBoard
	b.State = code
	return b
}

// KnownStates returns the states with dedicated board entries, in no
// particular order.
func KnownStates() []string {
	states := make([]string, 0, len(boardsByState))
	for s := range boardsByState {
		states = append(states, s)
	}
	return states
}

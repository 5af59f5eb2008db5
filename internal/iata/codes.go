// Package iata holds the reference sets of known IATA airline and airport
// codes used to judge whether a reported flight can be real. The sets are
// static configuration data; callers may extend or replace them.
package iata

import "strings"

// Set is a membership set of upper-case IATA codes.
type Set map[string]struct{}

// NewSet builds a Set from the given codes, upper-casing each.
func NewSet(codes ...string) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			s[c] = struct{}{}
		}
	}
	return s
}

// Has reports whether code is in the set. Matching is case-insensitive.
func (s Set) Has(code string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Merge returns a new Set containing every code of s and other.
func (s Set) Merge(other Set) Set {
	out := make(Set, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Airlines returns the default set of scheduled-carrier IATA codes.
func Airlines() Set {
	return NewSet(
		// US majors and regionals
		"AA", "DL", "UA", "WN", "B6", "AS", "NK", "F9", "G4", "SY",
		"YX", "QX", "OH", "MQ", "EV", "YV", "9E", "5Y", "C5",
		// Europe
		"BA", "VS", "LH", "AF", "KL", "IB", "AZ", "LX", "OS", "SN",
		"FR", "U2", "VY", "W6", "PC", "A3", "JU", "OU", "JP",
		"DY", "WF", "V7", "VF", "SK", "AY", "TP", "UX", "I2", "HV",
		"EI", "BE", "LS", "BY", "MT", "TO",
		// Middle East
		"EK", "QR", "EY", "TK", "SV", "MS", "RJ", "GF", "WY", "FZ",
		"XY", "G9", "J9", "KC", "IX", "W5",
		// Asia
		"SQ", "CX", "JL", "NH", "TG", "MH", "PR", "CI", "BR", "OZ",
		"KE", "AI", "6E", "SG", "G8", "TR", "FD", "AK", "JQ",
		"TT", "MI", "CA", "MU", "CZ", "HU", "FM", "SC", "KN", "JD",
		// Africa
		"SA", "ET", "KQ", "RW", "AT", "AH", "TU", "FB",
		// Latin America
		"LA", "AR", "CM", "AV", "G3", "JJ", "AD", "AM", "VB", "VW",
		"VL", "Y4",
		// North America (non-US)
		"AC", "WS", "PD", "TS", "WG", "F8",
		// Oceania
		"QF", "VA", "NZ", "FJ", "PX", "DJ", "TL", "IE",
	)
}

// Airports returns the default set of airport IATA codes with scheduled
// passenger service. Coverage follows the routes the configured sources serve.
func Airports() Set {
	return NewSet(
		// US
		"JFK", "LAX", "ORD", "DFW", "DEN", "ATL", "SFO", "SEA", "LAS", "PHX",
		"MIA", "EWR", "LGA", "BWI", "DCA", "IAD", "BOS", "MSP", "DTW", "CLT",
		"MCO", "IAH", "SAN", "TPA", "PDX", "STL", "HNL", "ANC", "SLC", "RDU",
		"BNA", "AUS", "MCI", "IND", "CLE", "CMH", "MKE", "BUF", "PIT", "CVG",
		// Europe
		"LHR", "CDG", "AMS", "FRA", "MAD", "FCO", "ZRH", "VIE", "BRU", "MUC",
		"LGW", "STN", "LTN", "ORY", "NCE", "LYS", "TLS", "BCN", "PMI", "AGP",
		"MXP", "LIN", "BGY", "VCE", "NAP", "DUS", "HAM", "STR", "CGN", "BER",
		"CPH", "OSL", "ARN", "GOT", "BGO", "HEL", "WAW", "KRK", "GDN", "PRG",
		"BUD", "SOF", "OTP", "BEG", "ZAG", "ATH", "SKG", "HER", "RHO", "LIS",
		"OPO", "FAO", "DUB", "ORK", "EDI", "GLA", "MAN", "BHX", "BRS", "NCL",
		// Middle East
		"DXB", "DOH", "AUH", "IST", "RUH", "CAI", "AMM", "BAH", "MCT", "SHJ",
		"SAW", "ADB", "AYT", "ESB", "JED", "DMM", "MED", "KWI", "BEY", "TLV",
		// Asia
		"SIN", "HKG", "NRT", "HND", "ICN", "BKK", "KUL", "MNL", "TPE", "PVG",
		"PEK", "CGK", "DPS", "SUB", "CAN", "CTU", "KMG", "NKG", "HGH", "XMN",
		"DEL", "BOM", "BLR", "HYD", "MAA", "CCU", "AMD", "GOI", "COK", "KHI",
		"LHE", "ISB", "DAC", "CMB", "KTM", "HAN", "SGN", "PNH", "RGN", "VTE",
		// Oceania
		"SYD", "MEL", "BNE", "PER", "ADL", "DRW", "CNS", "OOL", "HBA", "CBR",
		"AKL", "WLG", "CHC", "ZQN", "NAN", "SUV", "POM", "NOU", "PPT", "APW",
		// Africa
		"JNB", "CPT", "DUR", "ADD", "NBO", "MBA", "CMN", "RAK", "TUN", "ALG",
		"LOS", "ABV", "ACC", "DKR", "DAR", "EBB", "KGL", "LUN", "HRE", "WDH",
		// Latin America
		"GRU", "GIG", "BSB", "CGH", "SDU", "CNF", "POA", "REC", "FOR", "SSA",
		"EZE", "AEP", "COR", "MDZ", "SCL", "LIM", "CUZ", "BOG", "MDE", "CLO",
		"UIO", "GYE", "PTY", "SJO", "GUA", "SAL", "MEX", "CUN", "GDL", "MTY",
		"HAV", "SJU", "PUJ", "MBJ", "KIN", "NAS", "AUA", "CUR", "BGI", "POS",
	)
}

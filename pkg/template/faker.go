package template

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/blackcoderx/volt/pkg/core"
	"github.com/google/uuid"
)

// Generate produces a fresh pseudo-random value for the given faker kind.
// KIND is matched case-insensitively; an unrecognized kind is an
// UnknownFakerKindError. No generator shares state across invocations and
// no seeding is required by the spec, so package-level math/rand is used
// directly (its default source is safe for concurrent use since Go 1.20).
func Generate(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case "firstname":
		return pick(firstNames), nil
	case "lastname":
		return pick(lastNames), nil
	case "fullname", "name":
		return pick(firstNames) + " " + pick(lastNames), nil
	case "title":
		return pick(titles), nil
	case "suffix":
		return pick(suffixes), nil
	case "email":
		return strings.ToLower(pick(firstNames) + "." + pick(lastNames) + "@" + pick(domains)), nil
	case "username":
		return strings.ToLower(pick(firstNames)) + fmt.Sprint(rand.Intn(9999)), nil
	case "password":
		return randomPassword(8 + rand.Intn(9)), nil
	case "domain":
		return pick(domains), nil
	case "ipv4":
		return fmt.Sprintf("%d.%d.%d.%d", rand.Intn(256), rand.Intn(256), rand.Intn(256), rand.Intn(256)), nil
	case "ipv6":
		return randomIPv6(), nil
	case "useragent":
		return pick(userAgents), nil
	case "url":
		return "https://" + pick(domains) + "/" + pick(words), nil
	case "phone":
		return fmt.Sprintf("(%03d) %03d-%04d", 200+rand.Intn(800), rand.Intn(1000), rand.Intn(10000)), nil
	case "cellnumber":
		return fmt.Sprintf("+1%d%d%d%d%d%d%d%d%d%d", 2+rand.Intn(7), rand.Intn(10), rand.Intn(10), rand.Intn(10), rand.Intn(10), rand.Intn(10), rand.Intn(10), rand.Intn(10), rand.Intn(10), rand.Intn(10)), nil
	case "street":
		return fmt.Sprintf("%d %s %s", 1+rand.Intn(9999), pick(lastNames), pick(streetSuffixes)), nil
	case "city":
		return pick(cities), nil
	case "state":
		return pick(states), nil
	case "stateabbr":
		return pick(stateAbbrs), nil
	case "zipcode":
		return fmt.Sprintf("%05d", rand.Intn(100000)), nil
	case "country":
		return pick(countries), nil
	case "countrycode":
		return pick(countryCodes), nil
	case "latitude":
		return fmt.Sprintf("%.6f", rand.Float64()*180-90), nil
	case "longitude":
		return fmt.Sprintf("%.6f", rand.Float64()*360-180), nil
	case "company":
		return pick(lastNames) + " " + pick(companySuffixes), nil
	case "companysuffix":
		return pick(companySuffixes), nil
	case "industry":
		return pick(industries), nil
	case "profession":
		return pick(professions), nil
	case "word":
		return pick(words), nil
	case "words":
		return randomWords(3 + rand.Intn(3)), nil
	case "sentence":
		return randomSentence(), nil
	case "sentences":
		return randomSentences(2 + rand.Intn(3)), nil
	case "paragraph":
		return randomParagraph(), nil
	case "paragraphs":
		return randomParagraphs(2 + rand.Intn(3)), nil
	case "number":
		return fmt.Sprint(1 + rand.Intn(1000)), nil
	case "float":
		return fmt.Sprintf("%.2f", 1.0+rand.Float64()*999.0), nil
	case "digit":
		return fmt.Sprint(rand.Intn(10)), nil
	case "boolean":
		return fmt.Sprint(rand.Intn(2) == 0), nil
	case "date":
		return randomDate().Format("2006-01-02"), nil
	case "datetime", "timestamp":
		return randomDate().Format("2006-01-02 15:04:05"), nil
	case "time":
		return randomDate().Format("15:04:05"), nil
	case "uuid":
		return uuid.NewString(), nil
	case "color":
		return pick(colorNames), nil
	case "hexcolor":
		return fmt.Sprintf("#%06x", rand.Intn(1<<24)), nil
	default:
		return "", &core.UnknownFakerKindError{Kind: kind}
	}
}

func pick(items []string) string {
	return items[rand.Intn(len(items))]
}

func randomPassword(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func randomIPv6() string {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", rand.Intn(1<<16))
	}
	return strings.Join(groups, ":")
}

func randomWords(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = pick(words)
	}
	return strings.Join(w, " ")
}

func randomSentence() string {
	s := randomWords(4 + rand.Intn(5))
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func randomSentences(n int) string {
	s := make([]string, n)
	for i := range s {
		s[i] = randomSentence()
	}
	return strings.Join(s, " ")
}

func randomParagraph() string {
	return randomSentences(3 + rand.Intn(4))
}

func randomParagraphs(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = randomParagraph()
	}
	return strings.Join(p, "\n\n")
}

func randomDate() time.Time {
	base := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	days := rand.Intn(365 * 55)
	seconds := rand.Intn(86400)
	return base.AddDate(0, 0, days).Add(time.Duration(seconds) * time.Second)
}

var firstNames = []string{"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen"}

var lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin"}

var titles = []string{"Mr.", "Mrs.", "Ms.", "Dr.", "Prof."}

var suffixes = []string{"Jr.", "Sr.", "II", "III", "IV"}

var domains = []string{"example.com", "mail.test", "volt.dev", "webmail.io", "inbox.net"}

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/128.0",
}

var streetSuffixes = []string{"St", "Ave", "Blvd", "Dr", "Ln", "Ct", "Way"}

var cities = []string{"Springfield", "Riverside", "Fairview", "Greenville", "Madison", "Georgetown", "Salem", "Arlington"}

var states = []string{"California", "Texas", "Florida", "New York", "Ohio", "Georgia", "Michigan", "Oregon"}

var stateAbbrs = []string{"CA", "TX", "FL", "NY", "OH", "GA", "MI", "OR"}

var countries = []string{"United States", "Canada", "Germany", "Japan", "Brazil", "Australia", "France", "India"}

var countryCodes = []string{"US", "CA", "DE", "JP", "BR", "AU", "FR", "IN"}

var companySuffixes = []string{"Inc.", "LLC", "Group", "Partners", "Co.", "Holdings"}

var industries = []string{"Technology", "Healthcare", "Finance", "Retail", "Manufacturing", "Education"}

var professions = []string{"Engineer", "Designer", "Analyst", "Manager", "Consultant", "Technician"}

var words = []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt"}

var colorNames = []string{"red", "green", "blue", "yellow", "purple", "orange", "teal", "magenta", "cyan", "black", "white", "gray"}

package auth

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"golang.org/x/crypto/bcrypt"
)

// Directory-backed authentication. Credentials are verified with a bind
// against Active Directory; the primary server is tried first, then the
// secondary. When no LDAP server is configured, a bcrypt-hashed local admin
// password from the environment covers development setups.

type UserInfo struct {
	Username    string
	DisplayName string
	Mail        string
}

const dialTimeout = 5 * time.Second

func ldapServers() []string {
	return []string{
		os.Getenv("LDAP_SERVER"),
		os.Getenv("LDAP_SECONDARY_SERVER"),
	}
}

// SanitizeUsername strips an email domain from the login input, so
// "twilcox@example.com" and "twilcox" authenticate as the same account.
func SanitizeUsername(raw string) string {
	username := strings.TrimSpace(raw)
	if at := strings.Index(username, "@"); at >= 0 {
		username = username[:at]
	}
	return strings.ToLower(username)
}

// Authenticate verifies the credentials against the directory, or against the
// local admin fallback when no directory is configured.
func Authenticate(username, password string) bool {
	username = SanitizeUsername(username)
	if username == "" || password == "" {
		return false
	}

	servers := ldapServers()
	if servers[0] == "" && servers[1] == "" {
		return authenticateLocal(username, password)
	}

	domain := os.Getenv("LDAP_DOMAIN")

	for _, serverURL := range servers {
		if serverURL == "" {
			continue
		}

		conn, err := ldap.DialURL(serverURL, ldap.DialWithDialer(&net.Dialer{Timeout: dialTimeout}))
		if err != nil {
			log.Printf("LDAP dial failed on %s: %v", serverURL, err)
			continue
		}

		err = conn.Bind(fmt.Sprintf("%s@%s", username, domain), password)
		conn.Close()

		if err == nil {
			return true
		}
		log.Printf("LDAP auth failed on %s for %s: %v", serverURL, username, err)
	}

	return false
}

// authenticateLocal checks the LOCAL_ADMIN_* environment credentials. The
// password is stored as a bcrypt hash, never in the clear.
func authenticateLocal(username, password string) bool {
	adminUser := os.Getenv("LOCAL_ADMIN_USER")
	adminHash := os.Getenv("LOCAL_ADMIN_PASSWORD_HASH")

	if adminUser == "" || adminHash == "" {
		log.Println("LDAP not configured and no local admin set, rejecting login")
		return false
	}

	if username != strings.ToLower(adminUser) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(password)) == nil
}

// LookupUser fetches display name and mail from the directory using the
// service bind account. Lookup failures fall back to values derived from the
// username; this is a best-effort secondary query.
func LookupUser(username string) UserInfo {
	username = SanitizeUsername(username)

	fallback := UserInfo{
		Username:    username,
		DisplayName: username,
		Mail:        fmt.Sprintf("%s@%s", username, os.Getenv("LDAP_DOMAIN")),
	}

	bindUser := os.Getenv("LDAP_BIND_USER")
	bindPassword := os.Getenv("LDAP_BIND_PASSWORD")
	baseDN := os.Getenv("LDAP_BASE_DN")
	domain := os.Getenv("LDAP_DOMAIN")

	if bindUser == "" || bindPassword == "" || baseDN == "" {
		return fallback
	}

	for _, serverURL := range ldapServers() {
		if serverURL == "" {
			continue
		}

		conn, err := ldap.DialURL(serverURL, ldap.DialWithDialer(&net.Dialer{Timeout: dialTimeout}))
		if err != nil {
			log.Printf("LDAP dial failed on %s: %v", serverURL, err)
			continue
		}

		if err := conn.Bind(fmt.Sprintf("%s@%s", bindUser, domain), bindPassword); err != nil {
			log.Printf("LDAP service bind failed on %s: %v", serverURL, err)
			conn.Close()
			continue
		}

		req := ldap.NewSearchRequest(
			baseDN,
			ldap.ScopeWholeSubtree,
			ldap.NeverDerefAliases,
			1, int(dialTimeout/time.Second), false,
			fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(username)),
			[]string{"displayName", "mail"},
			nil,
		)

		result, err := conn.Search(req)
		conn.Close()

		if err != nil || len(result.Entries) == 0 {
			continue
		}

		entry := result.Entries[0]
		info := fallback
		if displayName := entry.GetAttributeValue("displayName"); displayName != "" {
			info.DisplayName = displayName
		}
		if mail := entry.GetAttributeValue("mail"); mail != "" {
			info.Mail = mail
		}
		return info
	}

	return fallback
}

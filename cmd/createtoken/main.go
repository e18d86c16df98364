package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/config"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/jwt"
)

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// createtoken prints a signed access token for local testing.
// The secret comes from JWT_SECRET_KEY (or .env).
func main() {
	userID := flag.String("user", "", "user id")
	role := flag.String("role", string(user.RoleStaff), "role: super_admin, company_admin, recruiter, staff or user")
	companyID := flag.String("company", "", "company id")
	branches := flag.String("branches", "", "comma separated branch ids")
	privileges := flag.String("privileges", "", "comma separated extra capabilities")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		if err := config.LoadDotEnv(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		secret = os.Getenv("JWT_SECRET_KEY")
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET_KEY is required")
		os.Exit(1)
	}

	identity := user.Identity{
		UserID:     *userID,
		Role:       user.Role(*role),
		BranchIDs:  splitList(*branches),
		Privileges: splitList(*privileges),
	}
	if *companyID != "" {
		identity.CompanyID = companyID
	}
	if identity.UserID == "" || !identity.Role.Valid() {
		flag.Usage()
		os.Exit(2)
	}

	token, _, err := jwt.NewJWTService(secret, *ttl).IssueAccessToken(identity)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}

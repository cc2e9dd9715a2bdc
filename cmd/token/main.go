// Command token emite un JWT de operador firmado con JWT_SECRET.
//
//	go run ./cmd/token -user ops-1 -role staff -ttl 480
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/logbook-api/pkg/config"
	"github.com/jhoicas/logbook-api/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración:", err)
		os.Exit(1)
	}

	user := flag.String("user", "", "ID del operador (requerido)")
	role := flag.String("role", jwt.RoleStaff, "rol: admin | staff")
	ttl := flag.Int("ttl", cfg.JWT.Expiration, "vigencia en minutos")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "-user es requerido")
		flag.Usage()
		os.Exit(2)
	}
	if *role != jwt.RoleAdmin && *role != jwt.RoleStaff {
		fmt.Fprintf(os.Stderr, "rol desconocido %q (admin | staff)\n", *role)
		os.Exit(2)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

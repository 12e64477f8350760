// Comando clinicctl: tareas de administración (migraciones y usuarios) sin pasar por la API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Herramientas de administración de Nova Salud",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newCreateUserCommand())
	root.AddCommand(newResetPasswordCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

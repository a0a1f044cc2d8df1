// Command competencias es el CLI admin del backend: login y gestión de
// usuarios contra la API HTTP.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func main() {
	var (
		baseURL = envOr("COMPETENCIAS_URL", "http://localhost:8080")
		token   = envOr("COMPETENCIAS_TOKEN", "")
		out     = envOr("COMPETENCIAS_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "competencias",
		Short: "CLI admin del backend de competencias",
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base de la API (env COMPETENCIAS_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "Access token bearer (env COMPETENCIAS_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{HTTP: &http.Client{Timeout: timeout}}
	sync := func() {
		cl.BaseURL = baseURL
		cl.Token = token
		cl.OutFormat = out
	}

	// login: imprime el access token para exportar en COMPETENCIAS_TOKEN
	var loginCorreo, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Login y emisión de access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync()
			if loginCorreo == "" || loginPassword == "" {
				return fmt.Errorf("--correo y --password son requeridos")
			}
			b, _ := json.Marshal(map[string]string{"correo": loginCorreo, "password": loginPassword})
			status, body, err := cl.do("POST", "/auth/login", b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("login fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginCorreo, "correo", "", "Correo institucional")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")

	// me
	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Perfil del usuario autenticado",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync()
			status, body, err := cl.do("GET", "/auth/me", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("me fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	// grupo users
	usersCmd := &cobra.Command{Use: "users", Short: "Gestión de usuarios (requiere rol admin)"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Listar usuarios (más recientes primero)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync()
			status, body, err := cl.do("GET", "/admin/users", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("list fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	var roleID int64
	var roleValue string
	setRoleCmd := &cobra.Command{
		Use:   "set-role",
		Short: "Cambiar el rol de un usuario (estudiante|docente|admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync()
			if roleID <= 0 {
				return fmt.Errorf("--id es requerido")
			}
			if roleValue == "" {
				return fmt.Errorf("--role es requerido (estudiante|docente|admin)")
			}
			b, _ := json.Marshal(map[string]string{"role": roleValue})
			status, body, err := cl.do("PUT", fmt.Sprintf("/admin/users/%d/role", roleID), b)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("set-role fallo: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}
	setRoleCmd.Flags().Int64Var(&roleID, "id", 0, "ID del usuario")
	setRoleCmd.Flags().StringVar(&roleValue, "role", "", "Nuevo rol")

	var deleteID int64
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Eliminar un usuario",
		RunE: func(cmd *cobra.Command, args []string) error {
			sync()
			if deleteID <= 0 {
				return fmt.Errorf("--id es requerido")
			}
			status, body, err := cl.do("DELETE", fmt.Sprintf("/admin/users/%d", deleteID), nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("delete fallo: status=%d body=%s", status, string(body))
			}
			if cl.OutFormat == "text" {
				fmt.Println("ok")
				return nil
			}
			cl.print(status, body)
			return nil
		},
	}
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "ID del usuario")

	usersCmd.AddCommand(listCmd)
	usersCmd.AddCommand(setRoleCmd)
	usersCmd.AddCommand(deleteCmd)

	root.AddCommand(loginCmd)
	root.AddCommand(meCmd)
	root.AddCommand(usersCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

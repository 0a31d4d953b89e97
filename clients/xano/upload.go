package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// SubirArchivo manda un archivo al endpoint /file de la API de datos y
// devuelve la URL pública. Usa el cliente con timeout largo porque los
// uploads tardan más que un GET común.
func (c *Client) SubirArchivo(ctx context.Context, nombreCampo string, nombreArchivo string, contenido io.Reader) (string, error) {
	var buf bytes.Buffer
	escritor := multipart.NewWriter(&buf)
	parte, err := escritor.CreateFormFile(nombreCampo, nombreArchivo)
	if err != nil {
		return "", &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo armar el formulario: %v", err)}
	}
	if _, err := io.Copy(parte, contenido); err != nil {
		return "", &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo leer el archivo: %v", err)}
	}
	if err := escritor.Close(); err != nil {
		return "", &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo cerrar el formulario: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseDatos+"/file", &buf)
	if err != nil {
		return "", &ErrorValidacion{Mensaje: fmt.Sprintf("pedido inválido POST /file: %v", err)}
	}
	req.Header.Set("Content-Type", escritor.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token := c.CredencialActual(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpFile.Do(req)
	if err != nil {
		return "", clasificarErrorRed("POST /file", err)
	}
	defer resp.Body.Close()

	datos, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ErrorRed{Operacion: "POST /file", Causa: err}
	}
	cuerpo, err := clasificarRespuesta(resp.StatusCode, "/file", datos)
	if err != nil {
		return "", err
	}

	url := urlDesdeRespuesta(cuerpo)
	if url == "" {
		return "", &ErrorRemoto{Status: resp.StatusCode, Ruta: "/file", Cuerpo: "la respuesta del upload no trae URL"}
	}
	return url, nil
}

// PostMultipart envía campos de texto más un archivo opcional como
// formulario multipart. Lo usan las altas de servicios con imagen adjunta.
func (c *Client) PostMultipart(ctx context.Context, servicio Servicio, path string, campos map[string]string, nombreCampo string, nombreArchivo string, contenido io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	escritor := multipart.NewWriter(&buf)
	for clave, valor := range campos {
		if err := escritor.WriteField(clave, valor); err != nil {
			return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo escribir el campo %s: %v", clave, err)}
		}
	}
	if contenido != nil {
		parte, err := escritor.CreateFormFile(nombreCampo, nombreArchivo)
		if err != nil {
			return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo armar el formulario: %v", err)}
		}
		if _, err := io.Copy(parte, contenido); err != nil {
			return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo leer el archivo: %v", err)}
		}
	}
	if err := escritor.Close(); err != nil {
		return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("no se pudo cerrar el formulario: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseDe(servicio)+path, &buf)
	if err != nil {
		return nil, &ErrorValidacion{Mensaje: fmt.Sprintf("pedido inválido POST %s: %v", path, err)}
	}
	req.Header.Set("Content-Type", escritor.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if token := c.CredencialActual(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpFile.Do(req)
	if err != nil {
		return nil, clasificarErrorRed("POST "+path, err)
	}
	defer resp.Body.Close()

	datos, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrorRed{Operacion: "POST " + path, Causa: err}
	}
	return clasificarRespuesta(resp.StatusCode, path, datos)
}

// urlDesdeRespuesta busca la URL del archivo en las formas que Xano
// devuelve: url directa, file.url, file_url, fileUrl o el primer elemento
// de un arreglo de archivos.
func urlDesdeRespuesta(datos []byte) string {
	var parsed interface{}
	if err := json.Unmarshal(datos, &parsed); err != nil {
		return ""
	}
	return urlDesdeValor(parsed)
}

func urlDesdeValor(valor interface{}) string {
	switch v := valor.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			return urlDesdeValor(v[0])
		}
	case map[string]interface{}:
		for _, clave := range []string{"url", "file_url", "fileUrl", "path"} {
			if s, ok := v[clave].(string); ok && s != "" {
				return s
			}
		}
		if anidado, ok := v["file"]; ok {
			return urlDesdeValor(anidado)
		}
	}
	return ""
}

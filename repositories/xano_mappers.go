package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"ambientefest-api/clients/xano"
	"ambientefest-api/domain"
)

// resolverImagen reduce cualquier forma en que Xano devuelve una imagen
// (string, objeto de archivo, arreglo de archivos, nil) a una URL plana.
// Es total: para cualquier entrada devuelve un string, vacío si no hay
// nada usable. Aplicada sobre su propia salida devuelve lo mismo.
func resolverImagen(valor interface{}) string {
	switch v := valor.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		return resolverImagen(v[0])
	case map[string]interface{}:
		// Orden de búsqueda: url, file.url, file_url, fileUrl
		if s, ok := v["url"].(string); ok && s != "" {
			return strings.TrimSpace(s)
		}
		if anidado, ok := v["file"]; ok {
			if s := resolverImagen(anidado); s != "" {
				return s
			}
		}
		for _, clave := range []string{"file_url", "fileUrl"} {
			if s, ok := v[clave].(string); ok && s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// normalizarCategoria reduce la categoría a un string plano sin importar
// si la API la manda como string, número, objeto o nil.
func normalizarCategoria(valor interface{}) string {
	switch v := valor.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]interface{}:
		for _, clave := range []string{"name", "nombre", "category", "categoria"} {
			if s, ok := v[clave].(string); ok && s != "" {
				return s
			}
		}
		if id, ok := v["id"]; ok {
			return normalizarCategoria(id)
		}
		if datos, err := json.Marshal(v); err == nil {
			return string(datos)
		}
	}
	return ""
}

func comoString(valor interface{}) string {
	switch v := valor.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func comoInt(valor interface{}) int {
	switch v := valor.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

func comoFloat(valor interface{}) float64 {
	switch v := valor.(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

func comoBool(valor interface{}) bool {
	switch v := valor.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "true" || v == "1"
	}
	return false
}

func primeroNoVacio(registro map[string]interface{}, claves ...string) interface{} {
	for _, clave := range claves {
		if valor, ok := registro[clave]; ok && valor != nil {
			return valor
		}
	}
	return nil
}

// decodificarLista acepta tanto un arreglo JSON directo como un objeto
// con el arreglo adentro (items o results)
func decodificarLista(datos []byte) ([]map[string]interface{}, error) {
	var lista []map[string]interface{}
	if err := json.Unmarshal(datos, &lista); err == nil {
		return lista, nil
	}
	var envoltura map[string]interface{}
	if err := json.Unmarshal(datos, &envoltura); err != nil {
		return nil, &xano.ErrorValidacion{Mensaje: "la respuesta remota no es una lista"}
	}
	for _, clave := range []string{"items", "results", "data"} {
		if interno, ok := envoltura[clave].([]interface{}); ok {
			lista = make([]map[string]interface{}, 0, len(interno))
			for _, elem := range interno {
				if registro, ok := elem.(map[string]interface{}); ok {
					lista = append(lista, registro)
				}
			}
			return lista, nil
		}
	}
	return nil, &xano.ErrorValidacion{Mensaje: "la respuesta remota no es una lista"}
}

func decodificarRegistro(datos []byte) (map[string]interface{}, error) {
	var registro map[string]interface{}
	if err := json.Unmarshal(datos, &registro); err != nil {
		return nil, &xano.ErrorValidacion{Mensaje: "la respuesta remota no es un objeto"}
	}
	return registro, nil
}

func mapUsuarioDesdeXano(registro map[string]interface{}) domain.Usuario {
	roleID := comoInt(primeroNoVacio(registro, "role_id", "roleId", "rol_id"))
	return domain.Usuario{
		ID:           comoInt(registro["id"]),
		Nombre:       comoString(primeroNoVacio(registro, "name", "nombre", "first_name")),
		Apellidos:    comoString(primeroNoVacio(registro, "last_name", "lastname", "apellidos")),
		Email:        comoString(registro["email"]),
		Telefono:     comoString(primeroNoVacio(registro, "phone", "telefono")),
		RoleID:       roleID,
		Rol:          domain.RolDesdeRoleID(roleID),
		PasswordHash: comoString(primeroNoVacio(registro, "password_hash", "password")),
		CreadoEn:     comoString(primeroNoVacio(registro, "created_at", "creado_en")),
	}
}

func mapUsuarioHaciaXano(usuario domain.Usuario) map[string]interface{} {
	payload := map[string]interface{}{
		"name":      usuario.Nombre,
		"last_name": usuario.Apellidos,
		"email":     usuario.Email,
		"phone":     usuario.Telefono,
		"role_id":   usuario.RoleID,
	}
	if usuario.Password != "" {
		payload["password"] = usuario.Password
	}
	return payload
}

func mapServicioDesdeXano(registro map[string]interface{}) domain.Servicio {
	imagen := resolverImagen(primeroNoVacio(registro, "image_url", "image", "image_file", "file"))
	return domain.Servicio{
		ID:                comoInt(registro["id"]),
		Nombre:            comoString(primeroNoVacio(registro, "name", "nombre", "title")),
		Descripcion:       comoString(primeroNoVacio(registro, "description", "descripcion")),
		Precio:            comoFloat(primeroNoVacio(registro, "price", "precio")),
		Categoria:         normalizarCategoria(primeroNoVacio(registro, "category", "categoria", "service_category")),
		Proveedor:         comoString(primeroNoVacio(registro, "provider", "proveedor")),
		Disponibilidad:    comoString(primeroNoVacio(registro, "availability", "disponibilidad")),
		Imagen:            imagen,
		ImagenURL:         imagen,
		Valoracion:        comoFloat(primeroNoVacio(registro, "rating", "valoracion")),
		NumValoraciones:   comoInt(primeroNoVacio(registro, "num_ratings", "num_valoraciones")),
		Disponible:        comoBool(primeroNoVacio(registro, "available", "disponible")),
		Estado:            comoString(primeroNoVacio(registro, "status", "estado")),
		CreadoPor:         comoInt(primeroNoVacio(registro, "user_id", "creado_por")),
		ServiceCategoryID: comoInt(primeroNoVacio(registro, "service_category_id", "category_id")),
		CreadoEn:          comoString(primeroNoVacio(registro, "created_at", "creado_en")),
	}
}

func mapServicioHaciaXano(servicio domain.Servicio) map[string]interface{} {
	return map[string]interface{}{
		"name":                servicio.Nombre,
		"description":         servicio.Descripcion,
		"price":               servicio.Precio,
		"category":            servicio.Categoria,
		"provider":            servicio.Proveedor,
		"availability":        servicio.Disponibilidad,
		"image_url":           servicio.Imagen,
		"rating":              servicio.Valoracion,
		"num_ratings":         servicio.NumValoraciones,
		"available":           servicio.Disponible,
		"status":              servicio.Estado,
		"user_id":             servicio.CreadoPor,
		"service_category_id": servicio.ServiceCategoryID,
	}
}

func mapBlogDesdeXano(registro map[string]interface{}) domain.Blog {
	imagen := resolverImagen(primeroNoVacio(registro, "image_url", "image", "image_file", "file"))
	fecha := comoString(primeroNoVacio(registro, "publication_date", "date", "created_at"))
	autorID := comoInt(primeroNoVacio(registro, "user_id", "author_id", "autor_id"))
	autor := comoString(primeroNoVacio(registro, "author", "autor"))
	if autor == "" && autorID != 0 {
		// La tabla blog no guarda el nombre del autor, solo su user_id
		autor = fmt.Sprintf("Usuario %d", autorID)
	}
	return domain.Blog{
		ID:               comoInt(registro["id"]),
		Titulo:           comoString(primeroNoVacio(registro, "title", "titulo")),
		Contenido:        comoString(primeroNoVacio(registro, "content", "contenido")),
		Categoria:        normalizarCategoria(primeroNoVacio(registro, "category", "categoria", "blog_category")),
		Imagen:           imagen,
		ImagenURL:        imagen,
		ImageURL:         imagen,
		FechaPublicacion: fecha,
		Fecha:            fecha,
		Estado:           comoString(primeroNoVacio(registro, "status", "estado")),
		AutorID:          autorID,
		Autor:            autor,
		CreadoEn:         comoString(primeroNoVacio(registro, "created_at", "creado_en")),
	}
}

func mapBlogHaciaXano(blog domain.Blog) map[string]interface{} {
	return map[string]interface{}{
		"title":            blog.Titulo,
		"content":          blog.Contenido,
		"category":         blog.Categoria,
		"image_url":        blog.Imagen,
		"publication_date": blog.FechaPublicacion,
		"status":           blog.Estado,
		"user_id":          blog.AutorID,
	}
}

func mapItemCarritoDesdeXano(registro map[string]interface{}) domain.ItemCarrito {
	return domain.ItemCarrito{
		ID:         comoInt(registro["id"]),
		CarritoID:  comoInt(primeroNoVacio(registro, "cart_id", "carrito_id")),
		ServicioID: comoInt(primeroNoVacio(registro, "service_id", "servicio_id")),
		Cantidad:   comoInt(primeroNoVacio(registro, "quantity", "cantidad")),
		Subtotal:   comoFloat(registro["subtotal"]),
	}
}

func mapPagoDesdeXano(registro map[string]interface{}) domain.Pago {
	return domain.Pago{
		ID:        comoInt(registro["id"]),
		UsuarioID: comoInt(primeroNoVacio(registro, "user_id", "usuario_id")),
		CarritoID: comoInt(primeroNoVacio(registro, "cart_id", "carrito_id")),
		Monto:     comoFloat(primeroNoVacio(registro, "amount", "monto", "total")),
		Metodo:    comoString(primeroNoVacio(registro, "method", "metodo", "payment_method")),
		Estado:    comoString(primeroNoVacio(registro, "status", "estado")),
		Fecha:     comoString(primeroNoVacio(registro, "date", "created_at", "fecha")),
	}
}

package handlers_test

import (
	"FileKeeper/internal/service"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_RequireToken(t *testing.T) {
	env := newTestEnv(t)
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/files"},
		{http.MethodGet, "/files"},
		{http.MethodGet, "/files/x"},
		{http.MethodPut, "/files/x/publish"},
		{http.MethodPut, "/files/x/unpublish"},
	} {
		rr := env.do(t, tc.method, tc.path, nil, "bogus")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, tc.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	}
}

func TestFiles_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "a@b.c", "pw")
	plain := env.createFile(t, token, map[string]any{"name": "a.txt", "type": "file", "data": b64("hi")})

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing name", map[string]any{"type": "file", "data": b64("x")}, "Missing name"},
		{"bad type", map[string]any{"name": "a", "type": "video", "data": b64("x")}, "Missing type"},
		{"missing data", map[string]any{"name": "a", "type": "image"}, "Missing data"},
		{"parent not found", map[string]any{"name": "a", "type": "folder", "parentId": "00000000-0000-0000-0000-000000000000"}, "Parent not found"},
		{"parent not folder", map[string]any{"name": "a", "type": "file", "data": b64("x"), "parentId": plain["id"]}, "Parent is not a folder"},
		{"invalid base64", map[string]any{"name": "a", "type": "file", "data": "%%%"}, "Invalid data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/files", tc.body, token)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.want), rr.Body.String())
		})
	}

	rr := env.do(t, http.MethodPost, "/files", "not json", token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFiles_CreateTooLarge(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "a@b.c", "pw")

	big := strings.Repeat("A", 2<<20)
	rr := env.do(t, http.MethodPost, "/files", map[string]any{"name": "big", "type": "file", "data": big}, token)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestFiles_CreateShowAndData(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "owner@x.y", "pw")
	other := env.login(t, "other@x.y", "pw")

	folder := env.createFile(t, owner, map[string]any{"name": "docs", "type": "folder"})
	assert.Equal(t, float64(0), folder["parentId"])
	assert.Equal(t, false, folder["isPublic"])
	_, leaked := folder["localPath"]
	assert.False(t, leaked)

	file := env.createFile(t, owner, map[string]any{"name": "a.txt", "type": "file", "data": b64("hi"), "parentId": folder["id"]})
	assert.Equal(t, folder["id"], file["parentId"])
	id := file["id"].(string)

	rr := env.do(t, http.MethodGet, "/files/"+id, nil, owner)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a.txt", decodeMap(t, rr)["name"])

	rr = env.do(t, http.MethodGet, "/files/"+id, nil, other)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/files/"+id+"/data", nil, owner)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hi", rr.Body.String())
	assert.Equal(t, service.ContentTypeFor("a.txt"), rr.Header().Get("Content-Type"))

	// приватный файл: аноним и чужой не видят
	rr = env.do(t, http.MethodGet, "/files/"+id+"/data", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = env.do(t, http.MethodGet, "/files/"+id+"/data", nil, other)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/files/"+folder["id"].(string)+"/data", nil, owner)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"A folder doesn't have content"}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/files/not-a-uuid/data", nil, owner)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFiles_PublishUnpublish(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "owner@x.y", "pw")
	other := env.login(t, "other@x.y", "pw")
	file := env.createFile(t, owner, map[string]any{"name": "a.txt", "type": "file", "data": b64("hi")})
	id := file["id"].(string)

	rr := env.do(t, http.MethodPut, "/files/"+id+"/publish", nil, other)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	for i := 0; i < 2; i++ {
		rr = env.do(t, http.MethodPut, "/files/"+id+"/publish", nil, owner)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, decodeMap(t, rr)["isPublic"])
	}

	rr = env.do(t, http.MethodGet, "/files/"+id+"/data", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "hi", rr.Body.String())

	rr = env.do(t, http.MethodPut, "/files/"+id+"/unpublish", nil, owner)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, false, decodeMap(t, rr)["isPublic"])

	rr = env.do(t, http.MethodGet, "/files/"+id+"/data", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodPut, "/files/00000000-0000-0000-0000-000000000000/publish", nil, owner)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFiles_ListPaging(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "owner@x.y", "pw")
	other := env.login(t, "other@x.y", "pw")

	folder := env.createFile(t, owner, map[string]any{"name": "docs", "type": "folder"})
	for i := 0; i < 25; i++ {
		env.createFile(t, owner, map[string]any{"name": fmt.Sprintf("f%02d", i), "type": "file", "data": b64("x"), "parentId": folder["id"]})
	}

	list := func(t *testing.T, query, token string) []map[string]any {
		t.Helper()
		rr := env.do(t, http.MethodGet, "/files"+query, nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		var out []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		return out
	}

	fid := folder["id"].(string)
	assert.Len(t, list(t, "?parentId="+fid, owner), 20)
	assert.Len(t, list(t, "?parentId="+fid+"&page=1", owner), 5)
	assert.Len(t, list(t, "?parentId="+fid+"&page=2", owner), 0)
	assert.Len(t, list(t, "?parentId="+fid+"&page=abc", owner), 20)
	assert.Len(t, list(t, "?parentId="+fid+"&page=-1", owner), 20)

	root := list(t, "", owner)
	require.Len(t, root, 1)
	assert.Equal(t, fid, root[0]["id"])
	assert.Len(t, list(t, "?parentId=0", owner), 1)

	// чужая папка выглядит пустой
	assert.Len(t, list(t, "?parentId="+fid, other), 0)
	assert.Len(t, list(t, "?parentId=garbage", owner), 0)
}

func TestFiles_ImageQueuesThumbnails(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "owner@x.y", "pw")

	env.createFile(t, owner, map[string]any{"name": "p.png", "type": "image", "data": b64("png-bytes")})
	rr := env.do(t, http.MethodGet, "/stats", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"users":1,"files":1,"thumbnailRejected":0}`, rr.Body.String())
}

func TestFiles_GzipResponse(t *testing.T) {
	env := newTestEnv(t)
	owner := env.login(t, "owner@x.y", "pw")
	env.createFile(t, owner, map[string]any{"name": "docs", "type": "folder"})

	req := httptest.NewRequest(http.MethodGet, "/files", nil)
	req.Header.Set("X-Token", owner)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":"docs"`)
}

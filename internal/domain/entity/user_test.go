package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lot-pos/lot-api/internal/domain"
	"github.com/lot-pos/lot-api/internal/domain/entity"
)

func TestValidRole(t *testing.T) {
	assert.True(t, entity.ValidRole(entity.RoleAdministrator))
	assert.True(t, entity.ValidRole(entity.RoleEmployee))
	assert.False(t, entity.ValidRole("admin"), "los roles distinguen mayúsculas y forma exacta")
	assert.False(t, entity.ValidRole(""))
}

func TestChangeRole_RolValido(t *testing.T) {
	u := &entity.User{Username: "ana", Role: entity.RoleEmployee}
	require.NoError(t, u.ChangeRole(entity.RoleAdministrator))
	assert.Equal(t, entity.RoleAdministrator, u.Role)
}

func TestChangeRole_RolDesconocido(t *testing.T) {
	u := &entity.User{Username: "ana", Role: entity.RoleEmployee}
	err := u.ChangeRole("SuperUser")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.RoleEmployee, u.Role, "un rol inválido no debe mutar el usuario")
}

func TestComboAddItem_ReemplazaCantidad(t *testing.T) {
	c := &entity.Combo{ID: 1, Name: "Combo Desayuno"}
	c.AddItem(10, 2)
	c.AddItem(11, 1)
	c.AddItem(10, 5) // mismo producto: reemplaza, no duplica

	require.Len(t, c.Items, 2)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestComboRemoveItem(t *testing.T) {
	c := &entity.Combo{ID: 1, Name: "Combo Desayuno"}
	c.AddItem(10, 2)
	c.AddItem(11, 1)

	c.RemoveItem(10)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(11), c.Items[0].ProductID)

	c.RemoveItem(99) // inexistente: sin efecto
	assert.Len(t, c.Items, 1)
}

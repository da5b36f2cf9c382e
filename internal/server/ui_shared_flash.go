package server

// uiFlashJS mirrors internal/flash: messages go visible -> animating-out ->
// removed, either after the body's data-flash-ttl or on close.
const uiFlashJS = `
(function () {
  const body = document.body || document.documentElement;
  const ttl = Math.max(500, Number(body.dataset.flashTtl || 5000));
  const exitMs = Math.max(0, Number(body.dataset.flashExit || 300));

  function flashContainer() {
    let host = document.querySelector('.flash-messages');
    if (host) return host;
    host = document.createElement('div');
    host.className = 'flash-messages';
    document.body.appendChild(host);
    return host;
  }

  function dismiss(item) {
    if (item.dataset.state !== 'visible') return;
    item.dataset.state = 'animating-out';
    if (item.__raincastTimer) clearTimeout(item.__raincastTimer);
    item.classList.add('animating-out');
    setTimeout(() => {
      item.dataset.state = 'removed';
      if (item.parentNode) item.parentNode.removeChild(item);
    }, exitMs);
  }

  function wire(item) {
    if (item.dataset.state) return;
    item.dataset.state = 'visible';
    const closeBtn = item.querySelector('.close-btn');
    if (closeBtn) closeBtn.addEventListener('click', () => dismiss(item));
    item.__raincastTimer = setTimeout(() => dismiss(item), ttl);
  }

  function notify(kind, message) {
    const text = String(message || '').trim();
    if (!text) return null;
    const item = document.createElement('div');
    item.className = 'flash-message ' + (kind || 'info');
    const msg = document.createElement('span');
    msg.textContent = text;
    const closeBtn = document.createElement('span');
    closeBtn.className = 'close-btn';
    closeBtn.innerHTML = '&times;';
    item.appendChild(msg);
    item.appendChild(closeBtn);
    flashContainer().appendChild(item);
    wire(item);
    return item;
  }

  window.raincastFlash = { notify: notify, dismiss: dismiss };

  document.addEventListener('DOMContentLoaded', () => {
    document.querySelectorAll('.flash-message').forEach(wire);
  });
})();
`
